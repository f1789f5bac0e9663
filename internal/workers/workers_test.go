// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// recordingWorker tracks its lifecycle calls into a shared log.
type recordingWorker struct {
	id  string
	log *[]string
}

func (w *recordingWorker) Run(context.Context) {
	*w.log = append(*w.log, "run:"+w.id)
}

func (w *recordingWorker) Stop() {
	*w.log = append(*w.log, "stop:"+w.id)
}

func TestWorkers_RunStartsInOrderStopReverses(t *testing.T) {
	var log []string
	ws := New(
		&recordingWorker{id: "a", log: &log},
		&recordingWorker{id: "b", log: &log},
		&recordingWorker{id: "c", log: &log},
	)

	ws.Run(context.Background())
	ws.Stop()

	expected := []string{"run:a", "run:b", "run:c", "stop:c", "stop:b", "stop:a"}
	if len(log) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(log), log)
	}
	for i, v := range expected {
		if log[i] != v {
			t.Errorf("expected log[%d]=%q, got %q", i, v, log[i])
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := New()

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_ZeroValue(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_SkipsNil(t *testing.T) {
	var log []string
	ws := New(nil, &recordingWorker{id: "a", log: &log}, nil)

	ws.Run(context.Background())

	if len(log) != 1 || log[0] != "run:a" {
		t.Errorf("expected only run:a, got %v", log)
	}
}
