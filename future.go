package apacai

import (
	"context"
	"sync"
)

// Promise completes a Future.
type Promise[T any] interface {
	Complete(T)
	Error(error)
}

// Future is the result of an asynchronous request. Only the first completion counts.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

var _ Promise[Outcome] = (*Future[Outcome])(nil)

// NewFuture returns a Future that is not yet completed.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Get waits for the result or for ctx to be done, whichever happens first.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the future is completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) Complete(value T) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

func (f *Future[T]) Error(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

func (f *Future[T]) resolve(value T, err error) {
	if err != nil {
		f.Error(err)
		return
	}
	f.Complete(value)
}
