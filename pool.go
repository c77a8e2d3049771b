// Copyright 2024 The future Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import (
	"runtime"
	"sync"
	"sync/atomic"
)

const defaultPoolQueueSize = 1024

// PoolOption configures a PoolExecutor.
type PoolOption func(*PoolExecutor)

// WithMaxWorkers sets the number of worker goroutines.
// If it's 0 or less, the pool uses runtime.NumCPU workers.
func WithMaxWorkers(n int) PoolOption {
	return func(p *PoolExecutor) { p.maxWorkers = n }
}

// WithQueueSize sets the capacity of the task queue. Submit blocks while the
// queue is full.
// If it's 0 or less, the default capacity is used.
func WithQueueSize(n int) PoolOption {
	return func(p *PoolExecutor) { p.queueSize = n }
}

// WithPanicHandler sets the handler invoked, on the worker goroutine, with
// the value of any panic out of a task.
// The default handler re-raises the panic, which crashes the process; pools
// that must survive execution failures observe them here instead (the
// corresponding future has already failed with a PanicError by the time the
// handler runs).
func WithPanicHandler(h func(v any)) PoolOption {
	return func(p *PoolExecutor) { p.panicHandler = h }
}

// PoolExecutor is an Executor backed by a bounded set of worker goroutines
// and a task queue.
//
// It implements Blocker: a scoped-blocking region admits one compensation
// worker for its duration, so awaiting a future from inside a pool task
// cannot starve the pool into deadlock.
//
// The zero value is not usable; use NewPool.
type PoolExecutor struct {
	maxWorkers   int
	queueSize    int
	panicHandler func(v any)

	queue   chan func()
	stopped atomic.Bool
	wg      sync.WaitGroup

	submitted atomic.Uint64
	completed atomic.Uint64
}

// NewPool creates a started PoolExecutor.
func NewPool(opts ...PoolOption) *PoolExecutor {
	p := &PoolExecutor{}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxWorkers <= 0 {
		p.maxWorkers = runtime.NumCPU()
	}
	if p.queueSize <= 0 {
		p.queueSize = defaultPoolQueueSize
	}

	p.queue = make(chan func(), p.queueSize)
	p.wg.Add(p.maxWorkers)
	for i := 0; i < p.maxWorkers; i++ {
		go p.worker(nil)
	}
	return p
}

// Submit enqueues task for execution by some worker, blocking while the
// queue is full. Every submitted task eventually runs.
// It panics if called on a stopped pool; submitting to a stopped pool is a
// misuse, as the task could never run.
func (p *PoolExecutor) Submit(task func()) {
	if task == nil {
		panic(nilCallbackPanicMsg)
	}
	if p.stopped.Load() {
		panic("future: submit on a stopped pool")
	}
	p.submitted.Add(1)
	p.queue <- task
}

// BlockOn implements the Blocker scoped-blocking contract: it admits one
// compensation worker for the duration of block, then runs block on the
// calling goroutine.
func (p *PoolExecutor) BlockOn(block func()) {
	release := make(chan struct{})
	p.wg.Add(1)
	go p.worker(release)
	defer close(release)
	block()
}

// worker drains the queue until the queue is closed, or until release (when
// non-nil, for compensation workers) is closed.
func (p *PoolExecutor) worker(release <-chan struct{}) {
	defer p.wg.Done()
	if release == nil {
		for task := range p.queue {
			p.run(task)
		}
		return
	}
	for {
		select {
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(task)
		case <-release:
			return
		}
	}
}

func (p *PoolExecutor) run(task func()) {
	defer p.completed.Add(1)
	defer func() {
		if v := recover(); v != nil {
			if p.panicHandler != nil {
				p.panicHandler(v)
				return
			}
			panic(v)
		}
	}()
	task()
}

// StopAndWait stops accepting tasks, runs every task already in the queue,
// and waits for all workers to finish.
func (p *PoolExecutor) StopAndWait() {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.queue)
	}
	p.wg.Wait()
}

// Stopped reports whether the pool has been stopped.
func (p *PoolExecutor) Stopped() bool { return p.stopped.Load() }

// MaxWorkers returns the number of permanent workers.
func (p *PoolExecutor) MaxWorkers() int { return p.maxWorkers }

// SubmittedTasks returns the total number of tasks submitted so far.
func (p *PoolExecutor) SubmittedTasks() uint64 { return p.submitted.Load() }

// CompletedTasks returns the total number of tasks that finished running,
// including ones that panicked.
func (p *PoolExecutor) CompletedTasks() uint64 { return p.completed.Load() }

// WaitingTasks returns the number of tasks sitting in the queue.
func (p *PoolExecutor) WaitingTasks() int { return len(p.queue) }
