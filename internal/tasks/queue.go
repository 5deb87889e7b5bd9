// Package tasks decouples resume scoring from the intake request path.
// Accepted applications enqueue a scoring task and the workers evaluate
// them in the background.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoringTask identifies one evaluation to run.
type ScoringTask struct {
	ApplicationID uuid.UUID
	EvaluationID  uuid.UUID
}

// Evaluator runs the scoring pipeline for a single task.
type Evaluator interface {
	Evaluate(ctx context.Context, task ScoringTask) error
}

// Enqueuer is the producer side of the queue.
type Enqueuer interface {
	Enqueue(task ScoringTask)
}

// Queue buffers scoring tasks and fans them out to a fixed set of workers.
// The buffer is unbounded so intake never blocks on a slow scorer.
type Queue struct {
	buffer      *buffer
	wakeCh      chan struct{}
	doneCh      chan struct{}
	evaluator   Evaluator
	workers     int
	taskTimeout time.Duration
	wg          sync.WaitGroup
}

var _ Enqueuer = (*Queue)(nil)

type QueueOptions func(q *Queue)

func WithWorkers(n int) QueueOptions {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithTaskTimeout(d time.Duration) QueueOptions {
	return func(q *Queue) {
		q.taskTimeout = d
	}
}

func NewQueue(evaluator Evaluator, opts ...QueueOptions) *Queue {
	q := &Queue{
		buffer:      newBuffer(),
		doneCh:      make(chan struct{}),
		evaluator:   evaluator,
		workers:     2,
		taskTimeout: 30 * time.Second,
	}

	for _, o := range opts {
		o(q)
	}

	q.wakeCh = make(chan struct{}, q.workers)
	return q
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled
// or the queue is closed.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run(ctx)
	}
}

// Enqueue adds a task and wakes an idle worker. Never blocks.
func (q *Queue) Enqueue(task ScoringTask) {
	q.buffer.PushBack(task)

	select {
	case q.wakeCh <- struct{}{}:
	default:
	}
}

// Close stops the workers and waits for in flight evaluations to finish.
func (q *Queue) Close() {
	close(q.doneCh)
	q.wg.Wait()
	zap.S().Named("tasks").Info("scoring queue closed")
}

func (q *Queue) run(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.doneCh:
			return
		default:
		}

		task, ok := q.buffer.Pop()
		if !ok {
			select {
			case <-q.wakeCh:
			case <-ctx.Done():
				return
			case <-q.doneCh:
				return
			}
			continue
		}

		q.process(ctx, task)
	}
}

func (q *Queue) process(ctx context.Context, task ScoringTask) {
	taskCtx, cancel := context.WithTimeout(ctx, q.taskTimeout)
	defer cancel()

	if err := q.evaluator.Evaluate(taskCtx, task); err != nil {
		zap.S().Named("tasks").Errorw("evaluation failed",
			"application_id", task.ApplicationID,
			"evaluation_id", task.EvaluationID,
			"error", err,
		)
	}
}
