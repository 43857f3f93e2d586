// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/pkg/uuid"
)

// Recorder accepts activity entries. Record must never block the caller.
type Recorder interface {
	Record(entry Entry)
}

// NopRecorder discards every entry.
type NopRecorder struct{}

// Record implements [Recorder].
func (NopRecorder) Record(Entry) {}

// Observer receives recorder outcomes. [metrics.Collector] implements it.
type Observer interface {
	ActivityWritten()
	ActivityDropped()
	ActivityFailed()
}

type nopObserver struct{}

func (nopObserver) ActivityWritten() {}
func (nopObserver) ActivityDropped() {}
func (nopObserver) ActivityFailed()  {}

// # Asynchronous Recorder

/*
AsyncRecorder persists entries from a bounded queue on background workers.

A full queue drops the entry; the request that produced it is never slowed
down or failed by auditing. Call [AsyncRecorder.Run] once to start the
workers.
*/
type AsyncRecorder struct {
	queue    chan Entry
	writer   Writer
	workers  int
	observer Observer
	logger   *zap.Logger
}

// NewAsyncRecorder builds a recorder with queueSize slots drained by workers goroutines.
func NewAsyncRecorder(writer Writer, queueSize, workers int, observer Observer, logger *zap.Logger) *AsyncRecorder {
	if observer == nil {
		observer = nopObserver{}
	}
	return &AsyncRecorder{
		queue:    make(chan Entry, queueSize),
		writer:   writer,
		workers:  max(workers, 1),
		observer: observer,
		logger:   logger,
	}
}

// Record enqueues entry or drops it when the queue is full.
func (recorder *AsyncRecorder) Record(entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	select {
	case recorder.queue <- entry:
	default:
		recorder.observer.ActivityDropped()
		recorder.logger.Warn("activity_dropped",
			zap.String("action", entry.Action),
			zap.String("principal_id", entry.PrincipalID),
		)
	}
}

/*
Run drains the queue until ctx is cancelled.

On cancellation every worker keeps writing whatever is already queued, then
returns. Run blocks until all workers are done.
*/
func (recorder *AsyncRecorder) Run(ctx context.Context) error {
	group := new(errgroup.Group)
	for range recorder.workers {
		group.Go(func() error {
			recorder.work(ctx)
			return nil
		})
	}
	return group.Wait()
}

func (recorder *AsyncRecorder) work(ctx context.Context) {
	for {
		select {
		case entry := <-recorder.queue:
			recorder.write(ctx, entry)
		case <-ctx.Done():
			recorder.drain(ctx)
			return
		}
	}
}

func (recorder *AsyncRecorder) drain(ctx context.Context) {
	for {
		select {
		case entry := <-recorder.queue:
			recorder.write(ctx, entry)
		default:
			return
		}
	}
}

func (recorder *AsyncRecorder) write(ctx context.Context, entry Entry) {
	// Entries flushed during shutdown still get their own deadline.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ActivityWriteTimeout)
	defer cancel()

	if err := recorder.writer.Insert(writeCtx, uuid.New(), entry); err != nil {
		recorder.observer.ActivityFailed()
		recorder.logger.Error("activity_write_failed",
			zap.String("action", entry.Action),
			zap.String("principal_id", entry.PrincipalID),
			zap.Error(err),
		)
		return
	}
	recorder.observer.ActivityWritten()
}
