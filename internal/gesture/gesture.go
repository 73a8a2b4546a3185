// Package gesture maps classified touch gestures onto a capability set.
//
// Detection (velocity thresholds, tap counting) belongs to the UI toolkit.
// This package only turns an already classified Gesture into a call on a
// Handler, so every surface that reacts to gestures shares one dispatch.
package gesture

import (
	"context"
	"fmt"
)

// Gesture is a classified touch gesture.
type Gesture int

const (
	SwipeLeft Gesture = iota + 1
	SwipeRight
	SwipeUp
	SwipeDown
	LongClick
	DoubleClick
	TripleClick
	Click
)

var names = map[Gesture]string{
	SwipeLeft:   "swipe-left",
	SwipeRight:  "swipe-right",
	SwipeUp:     "swipe-up",
	SwipeDown:   "swipe-down",
	LongClick:   "long-click",
	DoubleClick: "double-click",
	TripleClick: "triple-click",
	Click:       "click",
}

func (g Gesture) String() string {
	if n, ok := names[g]; ok {
		return n
	}
	return fmt.Sprintf("Gesture(%d)", int(g))
}

// Parse parses a gesture name such as "swipe-left".
func Parse(s string) (Gesture, error) {
	for g, n := range names {
		if n == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gesture %q", s)
}

// Handler is the capability set a gesture surface implements.
type Handler[R any] interface {
	SwipeLeft(ctx context.Context) (R, error)
	SwipeRight(ctx context.Context) (R, error)
	SwipeUp(ctx context.Context) (R, error)
	SwipeDown(ctx context.Context) (R, error)
	LongClick(ctx context.Context) (R, error)
	DoubleClick(ctx context.Context) (R, error)
	TripleClick(ctx context.Context) (R, error)
	Click(ctx context.Context) (R, error)
}

// Dispatch invokes the handler method for g.
func Dispatch[R any](ctx context.Context, h Handler[R], g Gesture) (R, error) {
	switch g {
	case SwipeLeft:
		return h.SwipeLeft(ctx)
	case SwipeRight:
		return h.SwipeRight(ctx)
	case SwipeUp:
		return h.SwipeUp(ctx)
	case SwipeDown:
		return h.SwipeDown(ctx)
	case LongClick:
		return h.LongClick(ctx)
	case DoubleClick:
		return h.DoubleClick(ctx)
	case TripleClick:
		return h.TripleClick(ctx)
	case Click:
		return h.Click(ctx)
	}
	var zero R
	return zero, fmt.Errorf("unknown gesture %d", int(g))
}

// Funcs adapts a table of functions to Handler. Missing entries return the
// zero result.
type Funcs[R any] map[Gesture]func(ctx context.Context) (R, error)

func (f Funcs[R]) call(ctx context.Context, g Gesture) (R, error) {
	if fn, ok := f[g]; ok && fn != nil {
		return fn(ctx)
	}
	var zero R
	return zero, nil
}

func (f Funcs[R]) SwipeLeft(ctx context.Context) (R, error)   { return f.call(ctx, SwipeLeft) }
func (f Funcs[R]) SwipeRight(ctx context.Context) (R, error)  { return f.call(ctx, SwipeRight) }
func (f Funcs[R]) SwipeUp(ctx context.Context) (R, error)     { return f.call(ctx, SwipeUp) }
func (f Funcs[R]) SwipeDown(ctx context.Context) (R, error)   { return f.call(ctx, SwipeDown) }
func (f Funcs[R]) LongClick(ctx context.Context) (R, error)   { return f.call(ctx, LongClick) }
func (f Funcs[R]) DoubleClick(ctx context.Context) (R, error) { return f.call(ctx, DoubleClick) }
func (f Funcs[R]) TripleClick(ctx context.Context) (R, error) { return f.call(ctx, TripleClick) }
func (f Funcs[R]) Click(ctx context.Context) (R, error)       { return f.call(ctx, Click) }
