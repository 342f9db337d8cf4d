// Package notify delivers watering reminders computed by the scheduling
// engine. The engine only hands over a plant id and a point in time.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/repository"
)

// Notifier schedules and cancels per-plant reminders. Scheduling replaces
// any earlier reminder for the same plant.
type Notifier interface {
	ScheduleReminder(ctx context.Context, plantID string, at time.Time) error
	CancelReminder(ctx context.Context, plantID string) error
}

// Noop drops every call.
type Noop struct{}

func (Noop) ScheduleReminder(context.Context, string, time.Time) error { return nil }
func (Noop) CancelReminder(context.Context, string) error              { return nil }

// OutboxNotifier records pending reminders in the reminders table, where a
// delivery process (or `kvitko reminders --due`) can pick them up.
type OutboxNotifier struct {
	repo repository.ReminderRepo
	now  func() time.Time
}

func NewOutboxNotifier(repo repository.ReminderRepo) *OutboxNotifier {
	return &OutboxNotifier{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (n *OutboxNotifier) ScheduleReminder(ctx context.Context, plantID string, at time.Time) error {
	if err := n.repo.Upsert(ctx, &domain.Reminder{PlantID: plantID, At: at, CreatedAt: n.now()}); err != nil {
		return fmt.Errorf("scheduling reminder for %s: %w", plantID, err)
	}
	return nil
}

func (n *OutboxNotifier) CancelReminder(ctx context.Context, plantID string) error {
	if err := n.repo.Delete(ctx, plantID); err != nil {
		return fmt.Errorf("cancelling reminder for %s: %w", plantID, err)
	}
	return nil
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier logs every reminder change at info level.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		return Noop{}
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) ScheduleReminder(ctx context.Context, plantID string, at time.Time) error {
	n.logger.InfoContext(ctx, "reminder_scheduled",
		slog.String("plant_id", plantID),
		slog.Time("at", at),
	)
	return nil
}

func (n *logNotifier) CancelReminder(ctx context.Context, plantID string) error {
	n.logger.InfoContext(ctx, "reminder_cancelled", slog.String("plant_id", plantID))
	return nil
}

type multi []Notifier

// Multi fans every call out to all notifiers. All of them are called even
// when one fails; the failures are joined.
func Multi(notifiers ...Notifier) Notifier {
	var out multi
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return Noop{}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (m multi) ScheduleReminder(ctx context.Context, plantID string, at time.Time) error {
	var errs []error
	for _, n := range m {
		if err := n.ScheduleReminder(ctx, plantID, at); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) CancelReminder(ctx context.Context, plantID string) error {
	var errs []error
	for _, n := range m {
		if err := n.CancelReminder(ctx, plantID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
