package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/taskflow/pkg/common/validation"
	"github.com/vnykmshr/taskflow/pkg/engine/counter"
	"github.com/vnykmshr/taskflow/pkg/engine/queue"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context and returns the value it
	// produced, or an error. It should respect context cancellation.
	Execute(ctx context.Context) (any, error)
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) (any, error)

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) (any, error) {
	return f(ctx)
}

// Result represents the recorded outcome of a task execution.
type Result struct {
	// TaskID correlates the result with its submission.
	TaskID string

	// Value is the value produced by the task, nil on failure.
	Value any

	// Err is any error that occurred during task execution, including
	// recovered panics.
	Err error

	// Duration is how long the task took to execute.
	Duration time.Duration

	// WorkerID identifies which worker executed the task.
	WorkerID int
}

// Pool represents a worker pool that executes tasks concurrently.
type Pool interface {
	// Submit adds a task to the pool for execution under an auto-assigned ID.
	// The task is never invoked synchronously by the caller.
	Submit(task Task) error

	// SubmitWithID adds a task under a caller-chosen ID. The ID is carried
	// on the task's Result so callers can correlate submission to outcome.
	SubmitWithID(id string, task Task) error

	// SubmitWithContext submits a task with a context. The context applies
	// to the queuing operation and is also passed to the task's Execute.
	SubmitWithContext(ctx context.Context, id string, task Task) error

	// SubmitWithTimeout submits a task with a timeout for queuing.
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// Results returns a channel of task results. Results accumulate without
	// blocking workers, so callers may drain incrementally or all at once
	// after Shutdown. The channel is closed once the pool has stopped and
	// every recorded result has been delivered.
	Results() <-chan Result

	// Shutdown initiates a graceful shutdown of the pool. No new tasks are
	// accepted; every task accepted before Shutdown still runs to completion
	// (success or captured failure). The returned channel closes when all
	// workers have exited.
	Shutdown() <-chan struct{}

	// ShutdownWithTimeout shuts down the pool with a deadline. Jobs still
	// queued when the deadline passes are not executed; they are recorded
	// as canceled results instead.
	ShutdownWithTimeout(timeout time.Duration) <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of tasks accepted by the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks with a recorded result.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the maximum number of tasks that can be queued.
	// Non-positive values fall back to DefaultQueueSize.
	QueueSize int

	// TaskTimeout is the default timeout for individual task execution.
	// Zero means no timeout.
	TaskTimeout time.Duration

	// PanicHandler is called when a task panics during execution.
	// The panic is always recovered and recorded on the task's Result;
	// the handler is purely observational.
	PanicHandler func(task Task, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, task Task)

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// DefaultQueueSize is used when Config.QueueSize is not positive.
const DefaultQueueSize = queue.DefaultCapacity

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	// Core pool state
	workers       []worker
	taskQueue     *queue.Queue[job]
	workerResults chan Result
	resultQueue   chan Result
	done          chan struct{}
	shutdownOnce  sync.Once

	// State tracking
	mu             sync.RWMutex
	isShutdown     bool
	aborted        atomic.Bool
	activeWorkers  atomic.Int32
	seq            atomic.Int64
	totalSubmitted counter.Counter
	totalCompleted counter.Counter

	// Worker management
	workerWg sync.WaitGroup
}

// job pairs a submitted task with its ID and submission context.
type job struct {
	id        string
	task      Task
	ctx       context.Context
	submitted time.Time
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a new worker pool with the specified number of workers and queue size.
func New(workerCount, queueSize int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewSafe creates a worker pool, returning a validation error instead of
// panicking on invalid parameters.
func NewSafe(workerCount, queueSize int) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", workerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("workerpool", "QueueSize", queueSize); err != nil {
		return nil, err
	}

	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	}), nil
}

// NewWithConfig creates a new worker pool with the specified configuration.
func NewWithConfig(config Config) Pool {
	if config.WorkerCount <= 0 {
		panic("worker count must be positive")
	}

	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}

	pool := &workerPool{
		config:        config,
		taskQueue:     queue.New[job](config.QueueSize),
		workerResults: make(chan Result),
		resultQueue:   make(chan Result),
		done:          make(chan struct{}),
	}

	go pool.collectResults()

	// Create and start workers
	pool.workers = make([]worker, config.WorkerCount)
	for i := 0; i < config.WorkerCount; i++ {
		pool.workers[i] = worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go pool.workers[i].run()
	}

	return pool
}

// collectResults moves worker results onto the public results channel,
// buffering internally so a worker never blocks on result delivery. The
// public channel is closed once all workers have exited and the backlog
// has been delivered.
func (p *workerPool) collectResults() {
	var backlog []Result
	in := p.workerResults

	for in != nil || len(backlog) > 0 {
		var out chan Result
		var next Result
		if len(backlog) > 0 {
			out = p.resultQueue
			next = backlog[0]
		}

		select {
		case r, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			backlog = append(backlog, r)
		case out <- next:
			backlog = backlog[1:]
		}
	}

	close(p.resultQueue)
}
