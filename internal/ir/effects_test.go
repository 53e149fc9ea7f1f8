package ir_test

import (
	"slices"
	"testing"

	"rash/internal/ir"
)

func TestEffectSetString(t *testing.T) {
	tests := []struct {
		set  ir.EffectSet
		want string
	}{
		{ir.Pure, "pure"},
		{ir.EffectNetwork, "network"},
		{ir.EffectFilesystem | ir.EffectReadsEnv, "reads-env|filesystem"},
		{ir.EffectProcess | ir.EffectUnknown, "process|unknown"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", tt.set, got, tt.want)
		}
	}
}

func TestCommandEffects(t *testing.T) {
	if got := ir.CommandEffects("printf"); !got.IsPure() {
		t.Errorf("printf = %s", got)
	}
	if got := ir.CommandEffects("wget"); !got.Has(ir.EffectNetwork) || !got.Has(ir.EffectFilesystem) {
		t.Errorf("wget = %s", got)
	}
	if got := ir.CommandEffects("reboot"); got != ir.EffectUnknown || got.IsPure() {
		t.Errorf("unknown command = %s", got)
	}
	if ir.IsAllowedCommand("reboot") || !ir.IsAllowedCommand("mkdir") {
		t.Error("allow list mismatch")
	}
	cmds := ir.AllowedCommands()
	if !slices.IsSorted(cmds) || !slices.Contains(cmds, "curl") {
		t.Errorf("allowed commands not sorted or incomplete: %v", cmds)
	}
	if ir.Pure.Has(ir.Pure) {
		t.Error("the empty set has no members")
	}
}
