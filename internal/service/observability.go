package service

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent describes one finished plant, room or import use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewSlogUseCaseObserver logs each use case as a "use_case" record. Failed
// use cases log at error level, except reminder failures after a committed
// change, which log at warn level because the plant data was saved.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		level = slog.LevelError
		if errors.Is(event.Err, ErrNotifyFailed) {
			level = slog.LevelWarn
		}
	}
	o.logger.LogAttrs(ctx, level, "use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
