// Package driver runs the compiler pipeline: parse, validate, scan for
// injection, lower, emit and verify. It owns caching, progress reporting and
// tracing; the stage packages stay free of IO.
package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"rash/internal/ast"
	"rash/internal/backend/posix"
	"rash/internal/buildpipeline"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/observ"
	"rash/internal/parser"
	"rash/internal/safety"
	"rash/internal/source"
	"rash/internal/trace"
	"rash/internal/validate"
	"rash/internal/verify"
)

// Options configure a compilation.
type Options struct {
	Config  config.Compile
	Version string
	// Linter is used by strict and paranoid verification; nil means shellcheck.
	Linter   verify.Linter
	Cache    *Cache
	Progress buildpipeline.ProgressSink
	Timer    *observ.Timer
	// Jobs bounds CompileDir parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Result is a successful compilation. Program and Module are nil when the
// script came from the cache.
type Result struct {
	Name     string
	Source   []byte
	FileSet  *source.FileSet
	Program  *ast.Program
	Module   *ir.Module
	Script   string
	Effects  ir.EffectSet
	Report   *verify.Report
	Proof    []byte
	Warnings []diag.Diagnostic
	Cached   bool
	Timings  buildpipeline.Timings
}

// compilation carries per-call state through the stages.
type compilation struct {
	ctx    context.Context
	name   string
	opts   Options
	tracer trace.Tracer
	parent uint64
	res    *Result
}

// stage runs fn as one pipeline stage with progress, tracing and timing.
func (c *compilation) stage(st buildpipeline.Stage, fn func() error) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	buildpipeline.Report(c.opts.Progress, c.name, st, buildpipeline.StatusWorking, nil, 0)
	span := trace.Begin(c.tracer, trace.ScopePass, string(st), c.parent)
	idx := c.opts.Timer.Begin(string(st))
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	c.res.Timings.Set(st, elapsed)
	status, note := buildpipeline.StatusDone, ""
	if err != nil {
		status, note = buildpipeline.StatusError, "failed"
	}
	c.opts.Timer.End(idx, note)
	span.End(note)
	buildpipeline.Report(c.opts.Progress, c.name, st, status, err, elapsed)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// Compile turns src into a shell script. The first failing stage stops the
// pipeline; its typed error is wrapped and available through errors.As.
func Compile(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+name, trace.ParentSpan(ctx))
	defer fileSpan.End("")

	c := &compilation{
		ctx:    ctx,
		name:   name,
		opts:   opts,
		tracer: tracer,
		parent: fileSpan.ID(),
		res:    &Result{Name: name, Source: src},
	}
	cfg := opts.Config

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(opts.Version, cfg, src)
		payload, ok, err := opts.Cache.Get(key)
		if err != nil {
			c.res.Warnings = append(c.res.Warnings, diag.NewWarning(diag.IOCacheError, source.NoSpan, err.Error()))
		} else if ok {
			c.res.Script = payload.Script
			c.res.Proof = payload.Proof
			c.res.Effects = ir.EffectSet(payload.Effects)
			c.res.Report = &verify.Report{Level: cfg.Verification, Checks: payload.Checks}
			c.res.Cached = true
			fileSpan.WithExtra("cache", "hit")
			buildpipeline.Report(opts.Progress, name, buildpipeline.StageEmit, buildpipeline.StatusCached, nil, 0)
			return c.res, nil
		}
	}

	err := c.stage(buildpipeline.StageParse, func() error {
		fs := source.NewFileSet()
		id := fs.AddVirtual(name, src)
		prog, err := parser.ParseFile(fs, id, parser.Options{})
		c.res.FileSet, c.res.Program = fs, prog
		return err
	})
	if err != nil {
		return c.res, err
	}
	prog := c.res.Program

	if err := c.stage(buildpipeline.StageValidate, func() error {
		return validate.Program(prog, cfg.Validation)
	}); err != nil {
		return c.res, err
	}

	if cfg.Validation != config.ValidationNone {
		if err := c.stage(buildpipeline.StageSafety, func() error {
			return safety.CheckProgram(prog)
		}); err != nil {
			return c.res, err
		}
	}

	lowerOpts := ir.Options{Optimize: cfg.Optimize}
	emitOpts := posix.Options{Dialect: cfg.TargetDialect, StrictMode: cfg.StrictMode}
	if err := c.stage(buildpipeline.StageLower, func() error {
		mod, err := ir.Lower(prog, lowerOpts)
		c.res.Module = mod
		return err
	}); err != nil {
		return c.res, err
	}
	c.res.Effects = c.res.Module.Effects

	if err := c.stage(buildpipeline.StageEmit, func() error {
		script, err := posix.Emit(c.res.Module, emitOpts)
		c.res.Script = script
		return err
	}); err != nil {
		return c.res, err
	}

	if err := c.stage(buildpipeline.StageVerify, func() error {
		rep, err := verify.Script(ctx, c.res.Script, c.res.Module, verify.Options{
			Level:   cfg.Verification,
			Dialect: cfg.TargetDialect,
			Linter:  opts.Linter,
			Regenerate: func() (string, error) {
				mod, err := ir.Lower(prog, lowerOpts)
				if err != nil {
					return "", err
				}
				return posix.Emit(mod, emitOpts)
			},
		})
		c.res.Report = rep
		if rep != nil {
			c.res.Warnings = append(c.res.Warnings, rep.Warnings...)
		}
		return err
	}); err != nil {
		c.res.Script = ""
		return c.res, err
	}

	if cfg.EmitProof {
		proof, err := verify.NewProof(opts.Version, cfg, src, c.res.Script, c.res.Effects.Names(), c.res.Report).Canonical()
		if err != nil {
			return c.res, fmt.Errorf("%s: %w", name, err)
		}
		c.res.Proof = proof
	}

	if opts.Cache != nil {
		payload := &CachePayload{
			Script:  c.res.Script,
			Proof:   c.res.Proof,
			Effects: uint8(c.res.Effects),
			Checks:  c.res.Report.Checks,
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			c.res.Warnings = append(c.res.Warnings, diag.NewWarning(diag.IOCacheError, source.NoSpan, err.Error()))
		}
	}
	return c.res, nil
}

// CompileFile reads path and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	src, err := os.ReadFile(path)
	if err != nil {
		ioErr := &IOError{Code: diag.IOLoadFileError, Path: path, Err: err}
		buildpipeline.Report(opts.Progress, path, buildpipeline.StageRead, buildpipeline.StatusError, ioErr, 0)
		return nil, ioErr
	}
	buildpipeline.Report(opts.Progress, path, buildpipeline.StageRead, buildpipeline.StatusDone, nil, 0)
	return Compile(ctx, path, src, opts)
}
