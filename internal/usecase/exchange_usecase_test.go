package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"skillswap/internal/domain/exchange"

	"github.com/google/uuid"
)

type exchangeFixture struct {
	uc      *Exchanges
	repo    *fakeExchangeRepo
	conns   *fakeConnectionRepo
	users   *fakeUserRepo
	chats   *fakeChatRepo
	notifs  *fakeNotificationRepo
	teacher uuid.UUID
	student uuid.UUID
}

func newExchangeFixture(t *testing.T) *exchangeFixture {
	t.Helper()
	f := &exchangeFixture{
		repo:    newFakeExchangeRepo(),
		conns:   newFakeConnectionRepo(),
		users:   newFakeUserRepo(),
		chats:   newFakeChatRepo(),
		notifs:  &fakeNotificationRepo{},
		teacher: uuid.New(),
		student: uuid.New(),
	}
	seedUsers(f.users, f.teacher, f.student)
	f.conns.connect(f.teacher, f.student)
	f.uc = NewExchangeUsecase(f.repo, f.conns, f.users, f.chats, newTestNotifier(f.notifs), nil)
	return f
}

func (f *exchangeFixture) create(t *testing.T) exchange.Exchange {
	t.Helper()
	ex, err := f.uc.Create(context.Background(), f.teacher, CreateExchangeInput{
		TeacherID: f.teacher,
		StudentID: f.student,
		SkillID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("create exchange: %v", err)
	}
	return ex
}

func TestExchangeUsecase_Create_RequiresConnection(t *testing.T) {
	f := newExchangeFixture(t)
	stranger := uuid.New()
	seedUsers(f.users, stranger)

	_, err := f.uc.Create(context.Background(), f.teacher, CreateExchangeInput{
		TeacherID: f.teacher,
		StudentID: stranger,
		SkillID:   uuid.New(),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for unconnected pair, got %v", err)
	}
}

func TestExchangeUsecase_Create_StampsPendingAndStartDate(t *testing.T) {
	f := newExchangeFixture(t)
	ex := f.create(t)

	if ex.Status != exchange.StatusPending {
		t.Fatalf("expected pending, got %s", ex.Status)
	}
	if ex.StartDate.IsZero() {
		t.Fatalf("expected start date stamped at creation")
	}
	if got := f.notifs.sentTo(f.student); len(got) != 1 {
		t.Fatalf("expected 1 notification to counterparty, got %d", len(got))
	}
}

func TestExchangeUsecase_Transition_Rules(t *testing.T) {
	tests := []struct {
		name    string
		path    []exchange.Status
		wantErr error
	}{
		{"pending to in_progress", []exchange.Status{exchange.StatusInProgress}, nil},
		{"full happy path", []exchange.Status{exchange.StatusInProgress, exchange.StatusCompleted}, nil},
		{"pending to cancelled", []exchange.Status{exchange.StatusCancelled}, nil},
		{"in_progress to cancelled", []exchange.Status{exchange.StatusInProgress, exchange.StatusCancelled}, nil},
		{"direct pending to completed", []exchange.Status{exchange.StatusCompleted}, ErrConflict},
		{"completed is terminal", []exchange.Status{exchange.StatusInProgress, exchange.StatusCompleted, exchange.StatusCancelled}, ErrConflict},
		{"cancelled is terminal", []exchange.Status{exchange.StatusCancelled, exchange.StatusInProgress}, ErrConflict},
		{"pending is not a target", []exchange.Status{exchange.StatusPending}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExchangeFixture(t)
			ex := f.create(t)

			var err error
			for _, target := range tt.path {
				_, err = f.uc.Transition(context.Background(), f.teacher, ex.ID, target)
				if err != nil {
					break
				}
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExchangeUsecase_Transition_CompletedStampsEndDate(t *testing.T) {
	f := newExchangeFixture(t)
	ex := f.create(t)

	started, err := f.uc.Transition(context.Background(), f.student, ex.ID, exchange.StatusInProgress)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done, err := f.uc.Transition(context.Background(), f.teacher, ex.ID, exchange.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.EndDate == nil {
		t.Fatalf("expected end date stamped on completion")
	}
	if done.EndDate.Before(started.StartDate) {
		t.Fatalf("end date %v before start date %v", done.EndDate, started.StartDate)
	}
}

func TestExchangeUsecase_Transition_NonParticipantForbidden(t *testing.T) {
	f := newExchangeFixture(t)
	ex := f.create(t)

	_, err := f.uc.Transition(context.Background(), uuid.New(), ex.ID, exchange.StatusInProgress)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestExchangeUsecase_Transition_CompletionPostsChatMessage(t *testing.T) {
	f := newExchangeFixture(t)
	ex := f.create(t)

	chatID := uuid.New()
	exID := ex.ID
	if err := f.chats.Create(context.Background(), chatFor(chatID, &exID, f.teacher, f.student)); err != nil {
		t.Fatalf("chat create: %v", err)
	}

	if _, err := f.uc.Transition(context.Background(), f.teacher, ex.ID, exchange.StatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.uc.Transition(context.Background(), f.teacher, ex.ID, exchange.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	msgs, _ := f.chats.ListMessages(context.Background(), chatID, 0)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 system message in linked chat, got %d", len(msgs))
	}
}

func TestExchangeUsecase_Rate_StudentOnlyCompletedOnce(t *testing.T) {
	f := newExchangeFixture(t)
	ex := f.create(t)

	// Pending exchange cannot be rated.
	if _, err := f.uc.Rate(context.Background(), f.student, ex.ID, RateExchangeInput{Rating: 4}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on pending, got %v", err)
	}

	mustTransition(t, f, ex.ID, exchange.StatusInProgress, exchange.StatusCompleted)

	// Teacher cannot rate.
	if _, err := f.uc.Rate(context.Background(), f.teacher, ex.ID, RateExchangeInput{Rating: 4}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for teacher, got %v", err)
	}

	// Out of range rejected.
	if _, err := f.uc.Rate(context.Background(), f.student, ex.ID, RateExchangeInput{Rating: 5.5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range, got %v", err)
	}

	rated, err := f.uc.Rate(context.Background(), f.student, ex.ID, RateExchangeInput{Rating: 4, Feedback: "great"})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 4 {
		t.Fatalf("expected rating 4 stored, got %v", rated.Rating)
	}

	// Rating is settable once.
	if _, err := f.uc.Rate(context.Background(), f.student, ex.ID, RateExchangeInput{Rating: 5}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second rating, got %v", err)
	}

	if got := f.notifs.sentTo(f.teacher); len(got) == 0 {
		t.Fatalf("expected rating notification to teacher")
	}
}

func TestExchangeUsecase_Rate_RecomputesTeacherMean(t *testing.T) {
	f := newExchangeFixture(t)

	ratings := []float64{4, 4, 4, 5}
	for _, r := range ratings {
		ex := f.create(t)
		mustTransition(t, f, ex.ID, exchange.StatusInProgress, exchange.StatusCompleted)
		if _, err := f.uc.Rate(context.Background(), f.student, ex.ID, RateExchangeInput{Rating: r}); err != nil {
			t.Fatalf("rate %v: %v", r, err)
		}
	}

	got := f.users.ratings[f.teacher]
	if math.Abs(got-4.25) > 1e-9 {
		t.Fatalf("expected teacher mean 4.25, got %v", got)
	}
}

func TestExchangeUsecase_ListForUser_RoleAndStatusFilter(t *testing.T) {
	f := newExchangeFixture(t)
	ex1 := f.create(t)
	f.create(t)
	mustTransition(t, f, ex1.ID, exchange.StatusInProgress)

	asTeacher, err := f.uc.ListForUser(context.Background(), f.teacher, exchange.RoleTeacher, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(asTeacher) != 2 {
		t.Fatalf("expected 2 exchanges as teacher, got %d", len(asTeacher))
	}

	asStudentPending, err := f.uc.ListForUser(context.Background(), f.student, exchange.RoleStudent, exchange.StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(asStudentPending) != 1 {
		t.Fatalf("expected 1 pending exchange as student, got %d", len(asStudentPending))
	}

	if _, err := f.uc.ListForUser(context.Background(), f.teacher, "bogus", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
}

func mustTransition(t *testing.T, f *exchangeFixture, id uuid.UUID, targets ...exchange.Status) {
	t.Helper()
	for _, target := range targets {
		if _, err := f.uc.Transition(context.Background(), f.teacher, id, target); err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
	}
}
