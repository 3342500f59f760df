// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks Run and Stop calls.
type mockWorker struct {
	id    int
	runs  int
	log   *[]int
	stops *[]int
}

func (m *mockWorker) Run(context.Context) {
	m.runs++
	*m.log = append(*m.log, m.id)
}

func (m *mockWorker) Stop() {
	*m.stops = append(*m.stops, m.id)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	var runOrder, stopOrder []int
	w1 := &mockWorker{id: 1, log: &runOrder, stops: &stopOrder}
	w2 := &mockWorker{id: 2, log: &runOrder, stops: &stopOrder}
	w3 := &mockWorker{id: 3, log: &runOrder, stops: &stopOrder}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runs != 1 {
			t.Errorf("worker[%d]: expected runs=1, got %d", i, w.runs)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_StartAndStopOrder(t *testing.T) {
	var runOrder, stopOrder []int
	w1 := &mockWorker{id: 1, log: &runOrder, stops: &stopOrder}
	w2 := &mockWorker{id: 2, log: &runOrder, stops: &stopOrder}
	w3 := &mockWorker{id: 3, log: &runOrder, stops: &stopOrder}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(context.Background())
	ws.Stop()

	wantRun := []int{1, 2, 3}
	wantStop := []int{3, 2, 1}
	for i := range wantRun {
		if runOrder[i] != wantRun[i] {
			t.Errorf("run order[%d]: expected %d, got %d", i, wantRun[i], runOrder[i])
		}
		if stopOrder[i] != wantStop[i] {
			t.Errorf("stop order[%d]: expected %d, got %d", i, wantStop[i], stopOrder[i])
		}
	}
}
