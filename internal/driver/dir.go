package driver

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rash/internal/buildpipeline"
	"rash/internal/diag"
	"rash/internal/trace"
)

// DirResult is the outcome for one file of a directory build.
type DirResult struct {
	Path   string
	Result *Result
	Err    error
}

// CompileDir compiles every source file under dir in parallel. Results are
// in sorted path order regardless of scheduling. A failing file does not
// stop the others; only cancellation and discovery errors are returned.
func CompileDir(ctx context.Context, dir string, opts Options) ([]DirResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := buildpipeline.Discover(dir)
	if err != nil {
		return nil, &IOError{Code: diag.IOLoadFileError, Path: dir, Err: err}
	}
	if len(files) == 0 {
		return nil, nil
	}
	buildpipeline.Queued(opts.Progress, files)

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile-dir:"+filepath.ToSlash(dir), trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span.ID())

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// per-file timings are not meaningful when interleaved
	fileOpts := opts
	fileOpts.Timer = nil
	idx := opts.Timer.Begin("compile-dir")

	results := make([]DirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := CompileFile(gctx, path, fileOpts)
			results[i] = DirResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	return results, nil
}
