package usecase

import (
	"context"
	"time"

	"skillswap/internal/domain/chat"
	"skillswap/internal/domain/connection"
	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/notification"
	"skillswap/internal/domain/progress"
	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// In-memory fakes implementing the repository interfaces. State is plain
// maps; error injection goes through the err field.

type fakeUserRepo struct {
	accounts map[uuid.UUID]user.Account
	profiles map[uuid.UUID]user.Profile
	ratings  map[uuid.UUID]float64
	err      error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		accounts: map[uuid.UUID]user.Account{},
		profiles: map[uuid.UUID]user.Profile{},
		ratings:  map[uuid.UUID]float64{},
	}
}

func (m *fakeUserRepo) CreateAccount(_ context.Context, acc user.Account, displayName string) error {
	if m.err != nil {
		return m.err
	}
	m.accounts[acc.ID] = acc
	m.profiles[acc.ID] = user.Profile{ID: acc.ID, Email: acc.Email, DisplayName: displayName}
	return nil
}

func (m *fakeUserRepo) GetAccountByID(_ context.Context, id uuid.UUID) (user.Account, error) {
	if m.err != nil {
		return user.Account{}, m.err
	}
	acc, ok := m.accounts[id]
	if !ok {
		return user.Account{}, repository.ErrUserNotFound
	}
	return acc, nil
}

func (m *fakeUserRepo) GetAccountByEmail(_ context.Context, email string) (user.Account, error) {
	if m.err != nil {
		return user.Account{}, m.err
	}
	for _, acc := range m.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return user.Account{}, repository.ErrUserNotFound
}

func (m *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, acc := range m.accounts {
		if acc.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeUserRepo) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	if m.err != nil {
		return user.Profile{}, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return user.Profile{}, repository.ErrUserNotFound
	}
	return p, nil
}

func (m *fakeUserRepo) ListProfilesExcluding(_ context.Context, id uuid.UUID) ([]user.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]user.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, fields repository.UpdateProfileFields) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if fields.DisplayName != nil {
		p.DisplayName = *fields.DisplayName
	}
	if fields.Bio != nil {
		p.Bio = *fields.Bio
	}
	if fields.PhotoURL != nil {
		p.PhotoURL = *fields.PhotoURL
	}
	m.profiles[id] = p
	return nil
}

func (m *fakeUserRepo) TouchLastActive(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	p := m.profiles[id]
	now := time.Now()
	p.LastActive = &now
	m.profiles[id] = p
	return nil
}

func (m *fakeUserRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64) error {
	if m.err != nil {
		return m.err
	}
	m.ratings[id] = rating
	return nil
}

type fakeConnectionRepo struct {
	requests  map[uuid.UUID]connection.Request
	connected map[[2]uuid.UUID]bool
	err       error
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{
		requests:  map[uuid.UUID]connection.Request{},
		connected: map[[2]uuid.UUID]bool{},
	}
}

func (m *fakeConnectionRepo) connect(a, b uuid.UUID) {
	m.connected[[2]uuid.UUID{a, b}] = true
	m.connected[[2]uuid.UUID{b, a}] = true
}

func (m *fakeConnectionRepo) CreateRequest(_ context.Context, req connection.Request) error {
	if m.err != nil {
		return m.err
	}
	for _, r := range m.requests {
		samePair := (r.FromUserID == req.FromUserID && r.ToUserID == req.ToUserID)
		if samePair && r.Status == connection.StatusPending {
			return repository.ErrDuplicateRequest
		}
	}
	m.requests[req.ID] = req
	return nil
}

func (m *fakeConnectionRepo) GetRequest(_ context.Context, id uuid.UUID) (connection.Request, error) {
	if m.err != nil {
		return connection.Request{}, m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return connection.Request{}, repository.ErrRequestNotFound
	}
	return r, nil
}

func (m *fakeConnectionRepo) ListIncomingRequests(_ context.Context, userID uuid.UUID, pendingOnly bool) ([]connection.Request, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]connection.Request, 0)
	for _, r := range m.requests {
		if r.ToUserID != userID {
			continue
		}
		if pendingOnly && r.Status != connection.StatusPending {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *fakeConnectionRepo) resolve(id uuid.UUID, status connection.Status) (connection.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return connection.Request{}, repository.ErrRequestNotFound
	}
	if r.Status != connection.StatusPending {
		return connection.Request{}, repository.ErrRequestNotPending
	}
	r.Status = status
	m.requests[id] = r
	return r, nil
}

func (m *fakeConnectionRepo) Accept(_ context.Context, id uuid.UUID) (connection.Request, error) {
	if m.err != nil {
		return connection.Request{}, m.err
	}
	r, err := m.resolve(id, connection.StatusAccepted)
	if err != nil {
		return connection.Request{}, err
	}
	m.connect(r.FromUserID, r.ToUserID)
	return r, nil
}

func (m *fakeConnectionRepo) Reject(_ context.Context, id uuid.UUID) (connection.Request, error) {
	if m.err != nil {
		return connection.Request{}, m.err
	}
	return m.resolve(id, connection.StatusRejected)
}

func (m *fakeConnectionRepo) AreConnected(_ context.Context, a, b uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.connected[[2]uuid.UUID{a, b}], nil
}

func (m *fakeConnectionRepo) HasPendingBetween(_ context.Context, a, b uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, r := range m.requests {
		if r.Status != connection.StatusPending {
			continue
		}
		if (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeConnectionRepo) ListConnections(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]uuid.UUID, 0)
	for pair := range m.connected {
		if pair[0] == userID {
			out = append(out, pair[1])
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	rows []notification.Notification
	err  error
}

func (m *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, n)
	return nil
}

func (m *fakeNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]notification.Notification, 0)
	for _, n := range m.rows {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	for i, n := range m.rows {
		if n.ID == id && n.UserID == userID {
			m.rows[i].Read = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (m *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for i := range m.rows {
		if m.rows[i].UserID == userID && !m.rows[i].Read {
			m.rows[i].Read = true
			n++
		}
	}
	return n, nil
}

func (m *fakeNotificationRepo) sentTo(userID uuid.UUID) []notification.Notification {
	out := make([]notification.Notification, 0)
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeExchangeRepo struct {
	exchanges map[uuid.UUID]exchange.Exchange
	err       error
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{exchanges: map[uuid.UUID]exchange.Exchange{}}
}

func (m *fakeExchangeRepo) Create(_ context.Context, ex exchange.Exchange) error {
	if m.err != nil {
		return m.err
	}
	if ex.StartDate.IsZero() {
		ex.StartDate = time.Now()
	}
	m.exchanges[ex.ID] = ex
	return nil
}

func (m *fakeExchangeRepo) GetByID(_ context.Context, id uuid.UUID) (exchange.Exchange, error) {
	if m.err != nil {
		return exchange.Exchange{}, m.err
	}
	ex, ok := m.exchanges[id]
	if !ok {
		return exchange.Exchange{}, repository.ErrExchangeNotFound
	}
	return ex, nil
}

func (m *fakeExchangeRepo) Transition(_ context.Context, id uuid.UUID, prior []exchange.Status, target exchange.Status) (exchange.Exchange, error) {
	if m.err != nil {
		return exchange.Exchange{}, m.err
	}
	ex, ok := m.exchanges[id]
	if !ok {
		return exchange.Exchange{}, repository.ErrExchangeNotFound
	}
	allowed := false
	for _, p := range prior {
		if ex.Status == p {
			allowed = true
		}
	}
	if !allowed {
		return exchange.Exchange{}, repository.ErrInvalidTransition
	}
	ex.Status = target
	now := time.Now()
	switch target {
	case exchange.StatusInProgress:
		ex.StartDate = now
	case exchange.StatusCompleted:
		ex.EndDate = &now
	}
	m.exchanges[id] = ex
	return ex, nil
}

func (m *fakeExchangeRepo) SetRating(_ context.Context, id uuid.UUID, rating float64, feedback string) (exchange.Exchange, error) {
	if m.err != nil {
		return exchange.Exchange{}, m.err
	}
	ex, ok := m.exchanges[id]
	if !ok {
		return exchange.Exchange{}, repository.ErrExchangeNotFound
	}
	if ex.Status != exchange.StatusCompleted {
		return exchange.Exchange{}, repository.ErrExchangeNotRatable
	}
	if ex.Rating != nil {
		return exchange.Exchange{}, repository.ErrExchangeRated
	}
	now := time.Now()
	ex.Rating = &rating
	ex.Feedback = feedback
	ex.RatedAt = &now
	m.exchanges[id] = ex
	return ex, nil
}

func (m *fakeExchangeRepo) TeacherAverageRating(_ context.Context, teacherID uuid.UUID) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var sum float64
	var n int
	for _, ex := range m.exchanges {
		if ex.TeacherID == teacherID && ex.Status == exchange.StatusCompleted && ex.Rating != nil {
			sum += *ex.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (m *fakeExchangeRepo) ListForUser(_ context.Context, userID uuid.UUID, role exchange.Role, status exchange.Status) ([]exchange.Exchange, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]exchange.Exchange, 0)
	for _, ex := range m.exchanges {
		isTeacher := ex.TeacherID == userID
		isStudent := ex.StudentID == userID
		switch role {
		case exchange.RoleTeacher:
			if !isTeacher {
				continue
			}
		case exchange.RoleStudent:
			if !isStudent {
				continue
			}
		default:
			if !isTeacher && !isStudent {
				continue
			}
		}
		if status != "" && ex.Status != status {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

type fakeChatRepo struct {
	chats    map[uuid.UUID]chat.Chat
	messages map[uuid.UUID][]chat.Message
	err      error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    map[uuid.UUID]chat.Chat{},
		messages: map[uuid.UUID][]chat.Message{},
	}
}

func (m *fakeChatRepo) Create(_ context.Context, c chat.Chat) error {
	if m.err != nil {
		return m.err
	}
	m.chats[c.ID] = c
	return nil
}

func (m *fakeChatRepo) GetByID(_ context.Context, id uuid.UUID) (chat.Chat, error) {
	if m.err != nil {
		return chat.Chat{}, m.err
	}
	c, ok := m.chats[id]
	if !ok {
		return chat.Chat{}, repository.ErrChatNotFound
	}
	return c, nil
}

func (m *fakeChatRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]chat.Chat, 0)
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *fakeChatRepo) FindByExchange(_ context.Context, exchangeID uuid.UUID) (chat.Chat, error) {
	if m.err != nil {
		return chat.Chat{}, m.err
	}
	for _, c := range m.chats {
		if c.SkillExchangeID != nil && *c.SkillExchangeID == exchangeID {
			return c, nil
		}
	}
	return chat.Chat{}, repository.ErrChatNotFound
}

func (m *fakeChatRepo) IsParticipant(_ context.Context, chatID, userID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	c, ok := m.chats[chatID]
	if !ok {
		return false, nil
	}
	return c.HasParticipant(userID), nil
}

func (m *fakeChatRepo) AddMessage(_ context.Context, msg chat.Message) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.chats[msg.ChatID]
	if !ok {
		return repository.ErrChatNotFound
	}
	m.messages[msg.ChatID] = append(m.messages[msg.ChatID], msg)
	c.LastMessage = &msg
	m.chats[msg.ChatID] = c
	return nil
}

func (m *fakeChatRepo) ListMessages(_ context.Context, chatID uuid.UUID, limit int) ([]chat.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	msgs := m.messages[chatID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (m *fakeChatRepo) MarkMessagesRead(_ context.Context, chatID, readerID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for i, msg := range m.messages[chatID] {
		if msg.SenderID != readerID && !msg.Read {
			m.messages[chatID][i].Read = true
			n++
		}
	}
	return n, nil
}

type fakeProgressRepo struct {
	byExchange map[uuid.UUID]progress.Progress
	err        error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{byExchange: map[uuid.UUID]progress.Progress{}}
}

func (m *fakeProgressRepo) Create(_ context.Context, p progress.Progress) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byExchange[p.SkillExchangeID]; ok {
		return repository.ErrProgressExists
	}
	m.byExchange[p.SkillExchangeID] = p
	return nil
}

func (m *fakeProgressRepo) GetByExchange(_ context.Context, exchangeID uuid.UUID) (progress.Progress, error) {
	if m.err != nil {
		return progress.Progress{}, m.err
	}
	p, ok := m.byExchange[exchangeID]
	if !ok {
		return progress.Progress{}, repository.ErrProgressNotFound
	}
	return p, nil
}

func (m *fakeProgressRepo) Update(_ context.Context, p progress.Progress) error {
	if m.err != nil {
		return m.err
	}
	existing, ok := m.byExchange[p.SkillExchangeID]
	if !ok {
		return repository.ErrProgressNotFound
	}
	p.ID = existing.ID
	m.byExchange[p.SkillExchangeID] = p
	return nil
}

func newTestNotifier(repo repository.NotificationRepository) *Notifier {
	return NewNotifier(repo, nil, nil)
}

func chatFor(id uuid.UUID, exchangeID *uuid.UUID, participants ...uuid.UUID) chat.Chat {
	return chat.Chat{ID: id, SkillExchangeID: exchangeID, Participants: participants}
}
