// Package errors provides structured error handling for the motion engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid animation configuration, such as a
	// non-positive spring mass or a negative keyframe duration. These are
	// authoring bugs and are surfaced at construction time, never deferred
	// to tick time.
	KindConfig
	// KindKey indicates a registry key conflict: the same key requested as
	// both a value and a timeline.
	KindKey
	// KindLifecycle indicates an operation on a scheduler that has been
	// closed. Callers holding stale handles receive this instead of crashing.
	KindLifecycle
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindKey:
		return "key"
	case KindLifecycle:
		return "lifecycle"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// MotionError represents a structured error in the motion engine.
type MotionError struct {
	// Op is the operation that failed (e.g., "animation.Registry.ValueFor").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MotionError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MotionError) Unwrap() error {
	return e.Err
}

// Config wraps err as a configuration error.
func Config(op string, err error) *MotionError {
	return &MotionError{Op: op, Kind: KindConfig, Err: err, Timestamp: time.Now()}
}

// Key wraps err as a registry key-conflict error.
func Key(op string, err error) *MotionError {
	return &MotionError{Op: op, Kind: KindKey, Err: err, Timestamp: time.Now()}
}

// Lifecycle wraps err as a lifecycle error.
func Lifecycle(op string, err error) *MotionError {
	return &MotionError{Op: op, Kind: KindLifecycle, Err: err, Timestamp: time.Now()}
}

// IsKind reports whether err is a *MotionError of the given kind anywhere in
// its chain.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if me, ok := err.(*MotionError); ok && me.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.Scheduler.TickOnce").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
