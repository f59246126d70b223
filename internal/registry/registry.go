// Package registry provides a concurrent name to value registry that is populated
// during start-up and sealed afterwards.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/alphadose/haxmap"
)

// ErrSealed is returned when adding to a registry after Seal was called.
var ErrSealed = errors.New("registry is sealed")

type Registry[T any] interface {
	Get(name string) (T, bool)
	Add(name string, value T) error
	Names() []string
	Seal()
	Sealed() bool
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
	sealed atomic.Bool
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) Add(name string, value T) error {
	if r.sealed.Load() {
		return fmt.Errorf("add %q: %w", name, ErrSealed)
	}
	r.values.Set(name, value)
	return nil
}

// Names returns the registered names in lexical order.
func (r *registry[T]) Names() []string {
	names := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

func (r *registry[T]) Seal() {
	r.sealed.Store(true)
}

func (r *registry[T]) Sealed() bool {
	return r.sealed.Load()
}
