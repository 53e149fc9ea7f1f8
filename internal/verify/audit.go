package verify

import (
	"strings"

	"rash/internal/diag"
	"rash/internal/ir"
)

// execNodes returns every command invocation in mod, statements and
// command substitutions alike, in emission order.
func execNodes(mod *ir.Module) []*ir.Node {
	var out []*ir.Node
	var walkValue func(v *ir.Value)
	var walk func(n *ir.Node)
	walkValue = func(v *ir.Value) {
		if v == nil {
			return
		}
		switch v.Kind {
		case ir.ValCommandSubst:
			walk(v.CommandSubst().Command)
		case ir.ValConcat:
			for _, p := range v.Concat().Parts {
				walkValue(p)
			}
		case ir.ValComparison:
			walkValue(v.Comparison().Left)
			walkValue(v.Comparison().Right)
		case ir.ValArithmetic:
			walkValue(v.Arithmetic().Left)
			walkValue(v.Arithmetic().Right)
		case ir.ValLogical:
			walkValue(v.Logical().Left)
			walkValue(v.Logical().Right)
		case ir.ValString, ir.ValBool, ir.ValVariable, ir.ValArg, ir.ValArgCount:
		}
	}
	walk = func(n *ir.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case ir.NodeLet:
			walkValue(n.Let().Value)
		case ir.NodeIf:
			d := n.If()
			walkValue(d.Cond)
			walk(d.Then)
			walk(d.Else)
		case ir.NodeSequence:
			for _, c := range n.Sequence().Nodes {
				walk(c)
			}
		case ir.NodeFunction:
			walk(n.Function().Body)
		case ir.NodeEcho:
			walkValue(n.Echo().Value)
		case ir.NodeFor:
			d := n.For()
			for _, it := range d.Items {
				walkValue(it)
			}
			walkValue(d.Start)
			walkValue(d.End)
			walk(d.Body)
		case ir.NodeWhile:
			walkValue(n.While().Cond)
			walk(n.While().Body)
		case ir.NodeCase:
			walkValue(n.Case().Scrutinee)
			for _, arm := range n.Case().Arms {
				walk(arm.Body)
			}
		case ir.NodeExit:
			walkValue(n.Exit().Code)
		case ir.NodeExec:
			for _, a := range n.Exec().Args {
				walkValue(a)
			}
			out = append(out, n)
		case ir.NodeBreak, ir.NodeContinue, ir.NodeReturn, ir.NodeNoop:
		}
	}
	for _, fn := range mod.Functions {
		walk(fn)
	}
	return out
}

// flags collects the letters of every constant short-option argument.
func flags(x *ir.ExecNode) string {
	var sb strings.Builder
	for _, a := range x.Args {
		text, ok := a.ConstText()
		if !ok || !strings.HasPrefix(text, "-") || strings.HasPrefix(text, "--") {
			continue
		}
		sb.WriteString(text[1:])
	}
	return sb.String()
}

// idempotenceProblem explains why running x twice may fail or change the
// outcome, or returns "".
func idempotenceProblem(x *ir.ExecNode) string {
	if x.User {
		return ""
	}
	f := flags(x)
	switch x.Command {
	case "mkdir":
		if !strings.ContainsRune(f, 'p') {
			return "mkdir without -p fails when the directory exists"
		}
	case "rm":
		if !strings.ContainsRune(f, 'f') {
			return "rm without -f fails when the file is already gone"
		}
	case "ln":
		if strings.ContainsRune(f, 's') && !strings.ContainsRune(f, 'f') {
			return "ln -s without -f fails when the link exists"
		}
	case "cp", "mv":
		return x.Command + " is not idempotent"
	}
	return ""
}

func auditIdempotence(mod *ir.Module) error {
	for _, n := range execNodes(mod) {
		if msg := idempotenceProblem(n.Exec()); msg != "" {
			return verifyErr(diag.VerNotIdempotent, n.Span, CheckIdempotence, "%s", msg)
		}
	}
	return nil
}

func networkCommands(mod *ir.Module) []*ir.Node {
	var out []*ir.Node
	for _, n := range execNodes(mod) {
		x := n.Exec()
		if !x.User && ir.CommandEffects(x.Command).Has(ir.EffectNetwork) {
			out = append(out, n)
		}
	}
	return out
}

func commandNames(nodes []*ir.Node) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range nodes {
		name := n.Exec().Command
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
