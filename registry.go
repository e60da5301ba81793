package zerocast

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/rawbytedev/zerocast/layout"
	"github.com/rawbytedev/zerocast/validity"
	"github.com/rawbytedev/zerocast/zc"
)

// NoHeader is the header type of a Slice that is a plain run of elements.
type NoHeader = struct{}

type typeKey struct {
	head reflect.Type
	// elem is nil for fixed-size types.
	elem reflect.Type
}

type registry struct {
	mu      sync.RWMutex
	targets map[typeKey]*zc.Target
}

var types = &registry{targets: make(map[typeKey]*zc.Target)}

// TargetOf returns the cast target of T: its layout and validity plan.
// It panics if T cannot be reinterpreted from bytes.
func TargetOf[T any]() *zc.Target {
	return types.lookup(typeKey{head: reflect.TypeFor[T]()})
}

// SliceTargetOf returns the cast target of an H header followed by a run
// of E elements.
func SliceTargetOf[H, E any]() *zc.Target {
	return types.lookup(typeKey{head: reflect.TypeFor[H](), elem: reflect.TypeFor[E]()})
}

func (r *registry) lookup(k typeKey) *zc.Target {
	r.mu.RLock()
	if t, ok := r.targets[k]; ok {
		r.mu.RUnlock()
		return t
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check
	if t, ok := r.targets[k]; ok {
		return t
	}

	t := compile(k)
	r.targets[k] = t
	Logger().Debug("registered cast target",
		zap.String("target", t.Name),
		zap.Stringer("layout", t.Layout),
		zap.Bool("all_valid", t.Plan.AllValid()),
		zap.Bool("interior", t.Plan.Interior()),
		zap.Bool("padded", t.Plan.Padded()),
	)
	return t
}

func compile(k typeKey) *zc.Target {
	head := layout.OfType(k.head)
	if k.elem == nil {
		return &zc.Target{Name: k.head.String(), Layout: head, Plan: validity.For(k.head)}
	}

	elem := layout.OfType(k.elem)
	l := head.Extend(layout.ForSlice(elem.Size(), elem.Align), 0)

	name := fmt.Sprintf("%s+[]%s", k.head, k.elem)
	if k.head == reflect.TypeFor[NoHeader]() {
		name = "[]" + k.elem.String()
	}
	return &zc.Target{
		Name:   name,
		Layout: l,
		Plan:   validity.ForTrailing(k.head, k.elem, l.SizeInfo.Offset),
	}
}
