package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"matelog-backend/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stubActivityStore struct {
	activities map[uuid.UUID]*models.ScreenActivity
	closeCalls int
}

func newStubActivityStore() *stubActivityStore {
	return &stubActivityStore{activities: make(map[uuid.UUID]*models.ScreenActivity)}
}

func (s *stubActivityStore) Create(ctx context.Context, a *models.ScreenActivity) error {
	a.ID = uuid.New()
	copied := *a
	s.activities[a.ID] = &copied
	return nil
}

func (s *stubActivityStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ScreenActivity, error) {
	a, ok := s.activities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (s *stubActivityStore) Close(ctx context.Context, id uuid.UUID, end time.Time, durationSeconds int) error {
	a, ok := s.activities[id]
	if !ok || a.Fin != nil {
		return pgx.ErrNoRows
	}
	s.closeCalls++
	a.Fin = &end
	a.DuracionSegundos = &durationSeconds
	return nil
}

type stubSessionStore struct {
	sessions []*models.StudySession
}

// Start mimics the repository transaction: close every open session for the
// user, then insert the new one.
func (s *stubSessionStore) Start(ctx context.Context, sess *models.StudySession) error {
	for _, existing := range s.sessions {
		if existing.UsuarioID == sess.UsuarioID && existing.Fin == nil {
			end := sess.Inicio
			minutes := int(end.Sub(existing.Inicio).Minutes())
			if minutes < 0 {
				minutes = 0
			}
			existing.Fin = &end
			existing.DuracionMinutos = &minutes
		}
	}
	sess.ID = uuid.New()
	copied := *sess
	s.sessions = append(s.sessions, &copied)
	return nil
}

func (s *stubSessionStore) GetOpen(ctx context.Context, userID uuid.UUID) (*models.StudySession, error) {
	var latest *models.StudySession
	for _, sess := range s.sessions {
		if sess.UsuarioID == userID && sess.Fin == nil {
			if latest == nil || sess.Inicio.After(latest.Inicio) {
				latest = sess
			}
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}

func (s *stubSessionStore) Close(ctx context.Context, id uuid.UUID, end time.Time, durationMinutes int) error {
	for _, sess := range s.sessions {
		if sess.ID == id && sess.Fin == nil {
			sess.Fin = &end
			sess.DuracionMinutos = &durationMinutes
		}
	}
	return nil
}

type stubReturnStore struct {
	events []*models.ReturnToContent
}

func (s *stubReturnStore) Create(ctx context.Context, e *models.ReturnToContent) error {
	e.ID = uuid.New()
	copied := *e
	s.events = append(s.events, &copied)
	return nil
}

func newTrackingFixture(start time.Time) (*TrackingService, *stubActivityStore, *stubSessionStore, *stubReturnStore, *fakeClock) {
	clock := &fakeClock{now: start}
	activities := newStubActivityStore()
	sessions := &stubSessionStore{}
	returns := &stubReturnStore{}
	svc := NewTrackingService(activities, sessions, returns, clock)
	return svc, activities, sessions, returns, clock
}

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestStartActivity_RequiresTipoPantalla(t *testing.T) {
	svc, activities, _, _, _ := newTrackingFixture(t0)

	_, err := svc.StartActivity(context.Background(), uuid.New(), "", nil)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(activities.activities) != 0 {
		t.Error("No record should be created on validation failure")
	}
}

func TestFinishActivity_DurationIsWholeSeconds(t *testing.T) {
	svc, _, _, _, clock := newTrackingFixture(t0)
	userID := uuid.New()

	activity, err := svc.StartActivity(context.Background(), userID, "leccion", nil)
	if err != nil {
		t.Fatalf("StartActivity failed: %v", err)
	}
	if !activity.Inicio.Equal(t0) {
		t.Errorf("Expected start %v, got %v", t0, activity.Inicio)
	}

	clock.Advance(125*time.Second + 700*time.Millisecond)

	duration, err := svc.FinishActivity(context.Background(), activity.ID)
	if err != nil {
		t.Fatalf("FinishActivity failed: %v", err)
	}
	if duration != 125 {
		t.Errorf("Expected 125 seconds, got %d", duration)
	}
}

func TestFinishActivity_UnknownID(t *testing.T) {
	svc, _, _, _, _ := newTrackingFixture(t0)

	_, err := svc.FinishActivity(context.Background(), uuid.New())
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestFinishActivity_ClosedIsTerminal(t *testing.T) {
	svc, activities, _, _, clock := newTrackingFixture(t0)

	activity, _ := svc.StartActivity(context.Background(), uuid.New(), "ejercicio", nil)

	clock.Advance(30 * time.Second)
	first, err := svc.FinishActivity(context.Background(), activity.ID)
	if err != nil {
		t.Fatalf("First finish failed: %v", err)
	}

	clock.Advance(5 * time.Minute)
	second, err := svc.FinishActivity(context.Background(), activity.ID)
	if err != nil {
		t.Fatalf("Second finish failed: %v", err)
	}

	if first != 30 || second != 30 {
		t.Errorf("Expected stored duration 30 both times, got %d then %d", first, second)
	}
	if activities.closeCalls != 1 {
		t.Errorf("Expected exactly one mutation, got %d", activities.closeCalls)
	}
}

func TestStartSession_ForceClosesPriorOpen(t *testing.T) {
	svc, _, sessions, _, clock := newTrackingFixture(t0)
	userID := uuid.New()

	first, err := svc.StartSession(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("First StartSession failed: %v", err)
	}

	clock.Advance(10 * time.Minute)

	second, err := svc.StartSession(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("Second StartSession failed: %v", err)
	}

	var stored *models.StudySession
	for _, s := range sessions.sessions {
		if s.ID == first.ID {
			stored = s
		}
	}
	if stored == nil || stored.Fin == nil {
		t.Fatal("First session should be force-closed")
	}
	if *stored.DuracionMinutos != 10 {
		t.Errorf("Expected first session duration 10 minutes, got %d", *stored.DuracionMinutos)
	}

	open, err := sessions.GetOpen(context.Background(), userID)
	if err != nil {
		t.Fatalf("Expected an open session: %v", err)
	}
	if open.ID != second.ID {
		t.Error("The second session should be the open one")
	}
}

func TestFinishSession_DurationIsWholeMinutes(t *testing.T) {
	svc, _, _, _, clock := newTrackingFixture(t0)
	userID := uuid.New()

	if _, err := svc.StartSession(context.Background(), userID, nil); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	clock.Advance(12*time.Minute + 45*time.Second)

	duration, err := svc.FinishSession(context.Background(), userID)
	if err != nil {
		t.Fatalf("FinishSession failed: %v", err)
	}
	if duration != 12 {
		t.Errorf("Expected 12 minutes, got %d", duration)
	}
}

func TestFinishSession_NoneOpen(t *testing.T) {
	svc, _, _, _, _ := newTrackingFixture(t0)

	_, err := svc.FinishSession(context.Background(), uuid.New())
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestRecordReturn_RequiresTemaID(t *testing.T) {
	svc, _, _, returns, _ := newTrackingFixture(t0)

	_, err := svc.RecordReturn(context.Background(), uuid.New(), "", "muy dificil")
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(returns.events) != 0 {
		t.Error("No event should be recorded on validation failure")
	}
}

func TestRecordReturn_CreatesImmutableEvent(t *testing.T) {
	svc, _, _, returns, _ := newTrackingFixture(t0)
	userID := uuid.New()

	event, err := svc.RecordReturn(context.Background(), userID, "tema-3", "repasar formulas")
	if err != nil {
		t.Fatalf("RecordReturn failed: %v", err)
	}

	if event.UsuarioID != userID || event.TemaID != "tema-3" || event.Motivo != "repasar formulas" {
		t.Errorf("Event fields not persisted correctly: %+v", event)
	}
	if !event.CreadoEn.Equal(t0) {
		t.Errorf("Expected creation time %v, got %v", t0, event.CreadoEn)
	}
	if len(returns.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(returns.events))
	}
}
