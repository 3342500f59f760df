// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-teacher-desk/internal/chat"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/service"
)

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker and returns immediately; the worker owns its own
// goroutines until Stop is called.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Workers runs a set of background workers as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers groups the given workers. They are started in argument order
// and stopped in reverse.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops every worker in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// schedulerWorker adapts the sync scheduler to the Worker interface.
type schedulerWorker struct {
	scheduler service.SyncScheduler
	interval  time.Duration
}

// NewSchedulerWorker wraps the background push loop as a Worker.
func NewSchedulerWorker(scheduler service.SyncScheduler, interval time.Duration) Worker {
	return &schedulerWorker{scheduler: scheduler, interval: interval}
}

func (w *schedulerWorker) Run(ctx context.Context) {
	w.scheduler.Start(ctx, w.interval)
}

func (w *schedulerWorker) Stop() {
	w.scheduler.Stop()
}

// chatWorker adapts the messaging client to the Worker interface. A failed
// initial dial is logged instead of propagated: messaging is a convenience
// channel and must never keep the client from starting.
type chatWorker struct {
	client *chat.Client
	logger *logger.Logger
}

// NewChatWorker wraps the messaging client as a Worker.
func NewChatWorker(client *chat.Client, log *logger.Logger) Worker {
	return &chatWorker{client: client, logger: log}
}

func (w *chatWorker) Run(ctx context.Context) {
	if err := w.client.Start(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("messaging server unavailable, chat disabled for this session")
	}
}

func (w *chatWorker) Stop() {
	w.client.Stop()
}
