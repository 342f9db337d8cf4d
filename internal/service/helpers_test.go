package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/testutil"
	"github.com/alexanderramin/kvitko/internal/watering"
)

var july1 = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	cancelled []string
	err       error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{scheduled: map[string]time.Time{}}
}

func (n *recordingNotifier) ScheduleReminder(_ context.Context, id string, at time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.scheduled[id] = at
	return nil
}

func (n *recordingNotifier) CancelReminder(_ context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.cancelled = append(n.cancelled, id)
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type plantEnv struct {
	db       *sql.DB
	plants   *repository.SQLitePlantRepo
	notifier *recordingNotifier
	observer *recordingObserver
	svc      *plantService
}

// newPlantEnv wires a plant service against an in-memory database, the
// built-in rule table and a clock fixed at july1.
func newPlantEnv(t *testing.T) *plantEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newPlantEnvWithUoW(t, database, testutil.NewTestUoW(database))
}

func newPlantEnvWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *plantEnv {
	t.Helper()
	plants := repository.NewSQLitePlantRepo(database)
	notifier := newRecordingNotifier()
	observer := &recordingObserver{}
	svc := NewPlantService(plants, uow, watering.NewProjector(rules.Default()), notifier,
		ReminderPolicy{Hour: 9}, observer).(*plantService)
	svc.now = func() time.Time { return july1 }
	return &plantEnv{db: database, plants: plants, notifier: notifier, observer: observer, svc: svc}
}
