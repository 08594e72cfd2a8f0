package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
)

func elasticResult(t *testing.T) *experiment.Result {
	t.Helper()
	r := experiment.NewRegistry()
	scene, err := r.Scene(experiment.CollisionElastic, experiment.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	exp := experiment.New(experiment.Config{Diagram: experiment.CollisionElastic, Params: experiment.DefaultParams(), Anim: anim.DefaultConfig()})
	if err := exp.Setup(scene, r.DefaultMetrics(experiment.CollisionElastic)); err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := elasticResult(t)
	runID, err := st.Save(res, anim.DefaultConfig())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, experiment.CollisionElastic+"_") || len(runID) != len(experiment.CollisionElastic)+9 {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Diagram != experiment.CollisionElastic {
		t.Errorf("expected diagram %s, got %s", experiment.CollisionElastic, meta.Diagram)
	}
	if meta.Params.Collision.Mass1 != 3 {
		t.Errorf("expected mass1 3, got %f", meta.Params.Collision.Mass1)
	}
	if meta.Frames != len(res.Frames) {
		t.Errorf("expected %d frames, got %d", len(res.Frames), meta.Frames)
	}
	if len(meta.Bodies) != 2 || meta.Bodies[0] != "ball1" {
		t.Errorf("unexpected bodies %v", meta.Bodies)
	}

	frames, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(frames) != len(res.Frames) {
		t.Fatalf("expected %d frames, got %d", len(res.Frames), len(frames))
	}
	phases := make([]dynamo.Phase, len(frames))
	for i, f := range frames {
		phases[i] = f.State.Phase
	}
	if err := anim.ValidateTrace(phases); err != nil {
		t.Errorf("reloaded trace invalid: %v", err)
	}
	if frames[0].Bodies[0].Velocity.X != 2 {
		t.Errorf("expected v0 = 2 on first frame, got %f", frames[0].Bodies[0].Velocity.X)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := elasticResult(t)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(res, anim.DefaultConfig()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(st.Dir(), "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids collided")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if err := st.Delete("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(elasticResult(t), anim.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(runID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("run still present: %v", err)
	}
}

func TestReadTraceErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad tick", "tick,time,phase\nx,0,before\n"},
		{"bad phase", "tick,time,phase\n1,0,sideways\n"},
		{"odd body columns", "tick,time,phase,x0\n1,0,before,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTrace(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}

	frames, err := ReadTrace(strings.NewReader("tick,time,phase\n"))
	if err != nil || len(frames) != 0 {
		t.Errorf("expected empty trace, got %v, %v", frames, err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	frames := []anim.Frame{{Tick: 1, State: dynamo.SimulationState{Phase: dynamo.During}}}
	if err := ExportJSON(&buf, RunMetadata{ID: "x"}, frames); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Meta   RunMetadata `json:"meta"`
		Frames []struct {
			State struct {
				Phase string `json:"phase"`
			} `json:"state"`
		} `json:"frames"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Meta.ID != "x" || got.Frames[0].State.Phase != "during" {
		t.Errorf("unexpected export %+v", got)
	}
}
