package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-manager/internal/platform/logging"
)

// Use cases that change the collection run as Validate, Perform, Verify,
// Archive, Respond. Nothing is persisted before Verify succeeds, so a
// failure in any earlier step leaves stored quotes untouched.

// ExecutionStep names one step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// stepFailure is the message an ExecutionError carries for each step.
var stepFailure = map[ExecutionStep]string{
	StepValidate: "input validation failed",
	StepPerform:  "operation failed",
	StepVerify:   "verification failed",
	StepArchive:  "state persistence failed",
	StepRespond:  "building response failed",
}

// ExecutionError records the step an operation failed in. Domain errors
// stay reachable through errors.Is and errors.As.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs Operations with step-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger means slog.Default().
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the steps of one use case. Nil steps are skipped and
// yield the zero value.
type Operation[I, P, V, O any] struct {
	// Name identifies the operation in logs.
	Name string

	// Validate rejects bad input before any work is done.
	Validate func(ctx context.Context, input I) error

	// Perform does the work, such as parsing an import document.
	Perform func(ctx context.Context, input I) (P, error)

	// Verify checks Perform's result before anything is stored.
	Verify func(ctx context.Context, input I, performed P) (V, error)

	// Archive persists the verified result.
	Archive func(ctx context.Context, input I, verified V) error

	// Respond shapes the result for the caller.
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// runStep runs fn unless it is nil, wrapping its error in an ExecutionError.
func runStep[T any](ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func() (T, error)) (T, error) {
	if fn == nil {
		var zero T
		return zero, nil
	}

	logger.DebugContext(ctx, "running step", slog.String("step", string(step)))

	out, err := fn()
	if err != nil {
		logger.WarnContext(ctx, "step failed", slog.String("step", string(step)), slog.Any("error", err))

		var zero T
		return zero, &ExecutionError{Step: step, Message: stepFailure[step], Cause: err}
	}

	return out, nil
}

// Execute runs op's steps in order and stops at the first failure.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger := logging.FromContext(logging.EnsureContext(ctx, exec.logger)).
		With(slog.String("operation", op.Name))
	start := time.Now()

	var validate func() (struct{}, error)
	if op.Validate != nil {
		validate = func() (struct{}, error) { return struct{}{}, op.Validate(ctx, input) }
	}
	if _, err := runStep(ctx, logger, StepValidate, validate); err != nil {
		return zero, err
	}

	var perform func() (P, error)
	if op.Perform != nil {
		perform = func() (P, error) { return op.Perform(ctx, input) }
	}
	performed, err := runStep(ctx, logger, StepPerform, perform)
	if err != nil {
		return zero, err
	}

	var verify func() (V, error)
	if op.Verify != nil {
		verify = func() (V, error) { return op.Verify(ctx, input, performed) }
	}
	verified, err := runStep(ctx, logger, StepVerify, verify)
	if err != nil {
		return zero, err
	}

	var archive func() (struct{}, error)
	if op.Archive != nil {
		archive = func() (struct{}, error) { return struct{}{}, op.Archive(ctx, input, verified) }
	}
	if _, err := runStep(ctx, logger, StepArchive, archive); err != nil {
		return zero, err
	}

	var respond func() (O, error)
	if op.Respond != nil {
		respond = func() (O, error) { return op.Respond(ctx, input, verified) }
	}
	result, err := runStep(ctx, logger, StepRespond, respond)
	if err != nil {
		return zero, err
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// IsExecutionError reports whether err came out of Execute.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep returns the step an Execute error failed in.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
