package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTaskTimeout = 2 * time.Second

type Task func(ctx context.Context)

type WorkerPool struct {
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	log         *zap.Logger
	taskTimeout time.Duration
	closeOnce   sync.Once
}

func NewWorkerPool(parent context.Context, size int, log *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}

	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:       make(chan Task, size),
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
		taskTimeout: defaultTaskTimeout,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			p.run(id, task)
		}
	}
}

func (p *WorkerPool) run(id int, task Task) {
	ctx, cancel := context.WithTimeout(p.ctx, p.taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()

	task(ctx)
}

// Submit queues a task. It blocks while all workers are busy and the buffer
// is full, and drops the task once the pool is shut down.
func (p *WorkerPool) Submit(task Task) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.tasks <- task:
		return true
	}
}

func (p *WorkerPool) Shutdown() {
	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
