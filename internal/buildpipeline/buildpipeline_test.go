package buildpipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"rash/internal/buildpipeline"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.rs", "a.rs", "notes.txt", "sub/c.rs", ".hidden/d.rs", "_skip/e.rs"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("fn main() {}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	files, err := buildpipeline.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := buildpipeline.DisplayFiles(files, dir)
	want := []string{"a.rs", "b.rs", "sub/c.rs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDisplayFilesDedup(t *testing.T) {
	got := buildpipeline.DisplayFiles([]string{"x/../a.rs", "a.rs", ""}, "")
	if !reflect.DeepEqual(got, []string{"a.rs"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTimings(t *testing.T) {
	var tm buildpipeline.Timings
	tm.Set(buildpipeline.StageParse, time.Millisecond)
	tm.Set(buildpipeline.StageParse, time.Millisecond)
	tm.Set(buildpipeline.StageEmit, 3*time.Millisecond)
	if !tm.Has(buildpipeline.StageParse) || tm.Has(buildpipeline.StageLower) {
		t.Fatal("Has is wrong")
	}
	if tm.Duration(buildpipeline.StageParse) != 2*time.Millisecond || tm.Total() != 5*time.Millisecond {
		t.Fatalf("durations = %v total %v", tm.Duration(buildpipeline.StageParse), tm.Total())
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan buildpipeline.Event, 4)
	buildpipeline.Queued(buildpipeline.ChannelSink{Ch: ch}, []string{"a.rs", "b.rs"})
	if ev := <-ch; ev.File != "a.rs" || ev.Status != buildpipeline.StatusQueued {
		t.Fatalf("first event = %+v", ev)
	}

	var got []buildpipeline.Event
	sink := buildpipeline.FuncSink(func(ev buildpipeline.Event) { got = append(got, ev) })
	boom := errors.New("boom")
	buildpipeline.Report(sink, "a.rs", buildpipeline.StageLower, buildpipeline.StatusError, boom, 0)
	buildpipeline.Report(nil, "a.rs", buildpipeline.StageLower, buildpipeline.StatusDone, nil, 0)
	if len(got) != 1 || !errors.Is(got[0].Err, boom) {
		t.Fatalf("events = %+v", got)
	}
	if buildpipeline.StageVerify.Index() <= buildpipeline.StageEmit.Index() || buildpipeline.Stage("x").Index() != -1 {
		t.Fatal("stage order is wrong")
	}
}
