package mandel

import (
	"errors"
	"fmt"
)

// ProgressFunc receives render progress in percent. Values never decrease
// within one render and the last one is exactly 100.
type ProgressFunc func(percent float64)

// CompleteFunc is called once per render, after the final progress of 100.
type CompleteFunc func()

var (
	ErrInvalidViewport = errors.New("invalid viewport")
	ErrInvalidRequest  = errors.New("invalid render request")
	ErrNoUnits         = errors.New("no compute units available")
	ErrUnitFailed      = errors.New("compute unit failed")
	ErrPoolClosed      = errors.New("pool closed")
	ErrRenderCancelled = errors.New("render cancelled")
)

// UnitError is reported when one compute unit cannot finish its band.
type UnitError struct {
	WorkerID   int
	Generation uint64
	Err        error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %d (render %d): %v", e.WorkerID, e.Generation, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// Is makes every UnitError match ErrUnitFailed.
func (e *UnitError) Is(target error) bool { return target == ErrUnitFailed }

// State of a render.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Strategy names the way a render was computed.
type Strategy string

const (
	StrategyParallel   Strategy = "parallel"
	StrategySequential Strategy = "sequential"
	// StrategyFallback is a parallel render that failed and was recomputed
	// sequentially.
	StrategyFallback Strategy = "fallback"
)
