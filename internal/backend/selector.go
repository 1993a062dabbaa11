// Package backend chooses between the primary REST API and the secondary store.
package backend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

// Class names an entity family that may have a secondary backend.
type Class string

const (
	ClassCourse     Class = "course"
	ClassUnit       Class = "unit"
	ClassEnrollment Class = "enrollment"
	ClassLearner    Class = "learner"
	ClassDashboard  Class = "dashboard"
)

// Operation is the kind of call being resolved.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpAction Operation = "action"
)

// IsWrite reports whether the operation mutates backend state.
func (op Operation) IsWrite() bool {
	return op != OpList && op != OpGet
}

// Source records which backend answered.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
)

// Outcome is a resolved value plus the side channel warning for secondary writes.
type Outcome[T any] struct {
	Value   T
	Source  Source
	Warning string
}

// Call performs one backend attempt.
type Call[T any] func(ctx context.Context) (T, error)

// Recorder receives one observation per resolution.
type Recorder interface {
	ObserveBackendResolution(class, operation, source, outcome string)
}

// Selector holds the fallback registrations.
type Selector struct {
	secondary map[Class]bool
	recorder  Recorder
	logger    *zap.Logger
}

// NewSelector registers a secondary backend for each named class.
func NewSelector(classes []string, recorder Recorder, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	registered := make(map[Class]bool, len(classes))
	for _, c := range classes {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			registered[Class(c)] = true
		}
	}
	return &Selector{secondary: registered, recorder: recorder, logger: logger}
}

// HasSecondary reports whether class may fall back.
func (s *Selector) HasSecondary(class Class) bool {
	return s != nil && s.secondary[class]
}

// Resolve tries primary, and on an auth or not-found failure tries secondary when one
// is registered for class. Any other primary failure is returned as is. Nothing is retried.
func Resolve[T any](ctx context.Context, sel *Selector, class Class, op Operation, primary, secondary Call[T]) (Outcome[T], error) {
	var zero Outcome[T]

	value, err := primary(ctx)
	if err == nil {
		sel.observe(class, op, SourcePrimary, "ok")
		return Outcome[T]{Value: value, Source: SourcePrimary}, nil
	}

	primaryErr := appErrors.FromError(err)
	if !fallbackEligible(primaryErr) || secondary == nil || !sel.HasSecondary(class) {
		sel.observe(class, op, SourcePrimary, string(primaryErr.Kind))
		sel.log().Warn("primary backend failed",
			zap.String("class", string(class)),
			zap.String("operation", string(op)),
			zap.String("kind", string(primaryErr.Kind)),
			zap.Int("status", primaryErr.Status),
		)
		return zero, primaryErr
	}

	sel.log().Info("primary backend unavailable, using secondary",
		zap.String("class", string(class)),
		zap.String("operation", string(op)),
		zap.Int("status", primaryErr.Status),
	)

	value, err = secondary(ctx)
	if err != nil {
		secErr := ClassifySecondary(err)
		if op.IsWrite() && secErr.Kind == appErrors.KindAuth {
			secErr = appErrors.AuthActionable(fmt.Sprintf("the secondary store rejected the %s %s", class, op), err)
		}
		sel.observe(class, op, SourceSecondary, string(secErr.Kind))
		sel.log().Warn("secondary backend failed",
			zap.String("class", string(class)),
			zap.String("operation", string(op)),
			zap.String("kind", string(secErr.Kind)),
			zap.Bool("actionable", secErr.Actionable),
			zap.Error(err),
		)
		return zero, secErr
	}

	out := Outcome[T]{Value: value, Source: SourceSecondary}
	if op.IsWrite() {
		out.Warning = writeWarning(class, op)
	}
	sel.observe(class, op, SourceSecondary, "ok")
	return out, nil
}

// Secondary skips the primary backend and classifies secondary failures the same way
// Resolve does. It serves entities that only the secondary store holds.
func Secondary[T any](ctx context.Context, sel *Selector, class Class, op Operation, call Call[T]) (T, error) {
	value, err := call(ctx)
	if err != nil {
		secErr := ClassifySecondary(err)
		if op.IsWrite() && secErr.Kind == appErrors.KindAuth {
			secErr = appErrors.AuthActionable(fmt.Sprintf("the secondary store rejected the %s %s", class, op), err)
		}
		sel.observe(class, op, SourceSecondary, string(secErr.Kind))
		var zero T
		return zero, secErr
	}
	sel.observe(class, op, SourceSecondary, "ok")
	return value, nil
}

func fallbackEligible(err *appErrors.Error) bool {
	return err.Kind == appErrors.KindAuth || err.Kind == appErrors.KindNotFound
}

func writeWarning(class Class, op Operation) string {
	return fmt.Sprintf("The primary backend did not accept this %s %s; it was saved to the secondary store, so its durability depends on that store.", class, op)
}

func (s *Selector) observe(class Class, op Operation, source Source, outcome string) {
	if s == nil || s.recorder == nil {
		return
	}
	s.recorder.ObserveBackendResolution(string(class), string(op), string(source), outcome)
}

func (s *Selector) log() *zap.Logger {
	if s == nil || s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}
