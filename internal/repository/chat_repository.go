package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/chat"

	"github.com/google/uuid"
)

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
)

type ChatRepository interface {
	Create(ctx context.Context, c chat.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error)
	FindByExchange(ctx context.Context, exchangeID uuid.UUID) (chat.Chat, error)
	IsParticipant(ctx context.Context, chatID, userID uuid.UUID) (bool, error)

	// AddMessage inserts the message and refreshes the chat's denormalized
	// last-message columns in one transaction.
	AddMessage(ctx context.Context, msg chat.Message) error
	ListMessages(ctx context.Context, chatID uuid.UUID, limit int) ([]chat.Message, error)

	// MarkMessagesRead flags every message in the chat that was sent by
	// someone other than readerID.
	MarkMessagesRead(ctx context.Context, chatID, readerID uuid.UUID) (int64, error)
}

type PostgresChatRepository struct {
	db database.DB
}

func NewPostgresChatRepository(db database.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, c chat.Chat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO chats (id, title, skill_exchange_id) VALUES ($1, $2, $3)`,
		c.ID, c.Title, c.SkillExchangeID,
	); err != nil {
		if isForeignKeyViolation(err) {
			return ErrExchangeNotFound
		}
		return err
	}

	for _, p := range c.Participants {
		if _, err := tx.Exec(ctx,
			`INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			c.ID, p,
		); err != nil {
			if isForeignKeyViolation(err) {
				return ErrUserNotFound
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

const chatColumns = `
c.id, COALESCE(c.title, ''), c.skill_exchange_id,
c.last_message_text, c.last_message_sender, c.last_message_at,
c.created_at, c.updated_at`

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	row := r.db.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats c WHERE c.id = $1`, id)
	c, err := scanChat(row)
	if err != nil {
		return chat.Chat{}, err
	}
	cs := []chat.Chat{c}
	if err := r.attachParticipants(ctx, cs); err != nil {
		return chat.Chat{}, err
	}
	return cs[0], nil
}

func (r *PostgresChatRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+chatColumns+`
FROM chats c
JOIN chat_participants cp ON cp.chat_id = c.id
WHERE cp.user_id = $1
ORDER BY c.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Chat, 0)
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachParticipants(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresChatRepository) FindByExchange(ctx context.Context, exchangeID uuid.UUID) (chat.Chat, error) {
	row := r.db.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats c WHERE c.skill_exchange_id = $1`, exchangeID)
	c, err := scanChat(row)
	if err != nil {
		return chat.Chat{}, err
	}
	cs := []chat.Chat{c}
	if err := r.attachParticipants(ctx, cs); err != nil {
		return chat.Chat{}, err
	}
	return cs[0], nil
}

func (r *PostgresChatRepository) IsParticipant(ctx context.Context, chatID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_participants WHERE chat_id = $1 AND user_id = $2)`,
		chatID, userID).Scan(&exists)
	return exists, err
}

func (r *PostgresChatRepository) AddMessage(ctx context.Context, msg chat.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `
INSERT INTO messages (id, chat_id, sender_id, content, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.Read, msg.CreatedAt,
	); err != nil {
		if isForeignKeyViolation(err) {
			return ErrChatNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
UPDATE chats SET
	last_message_text = $2,
	last_message_sender = $3,
	last_message_at = $4,
	updated_at = now()
WHERE id = $1`,
		msg.ChatID, msg.Content, msg.SenderID, msg.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID, limit int) ([]chat.Message, error) {
	q := `
SELECT id, chat_id, sender_id, content, is_read, created_at
FROM messages WHERE chat_id = $1 ORDER BY created_at ASC`
	args := []any{chatID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `
UPDATE messages SET is_read = TRUE
WHERE chat_id = $1 AND sender_id <> $2 AND is_read = FALSE`, chatID, readerID)
}

func (r *PostgresChatRepository) attachParticipants(ctx context.Context, chats []chat.Chat) error {
	if len(chats) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT chat_id, user_id FROM chat_participants WHERE chat_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byChat := map[uuid.UUID][]uuid.UUID{}
	for rows.Next() {
		var chatID, userID uuid.UUID
		if err := rows.Scan(&chatID, &userID); err != nil {
			return err
		}
		byChat[chatID] = append(byChat[chatID], userID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range chats {
		chats[i].Participants = byChat[chats[i].ID]
	}
	return nil
}

func scanChat(row database.Row) (chat.Chat, error) {
	var (
		c          chat.Chat
		lastText   *string
		lastSender *uuid.UUID
		lastAt     *time.Time
	)
	if err := row.Scan(
		&c.ID, &c.Title, &c.SkillExchangeID,
		&lastText, &lastSender, &lastAt,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return chat.Chat{}, ErrChatNotFound
		}
		return chat.Chat{}, err
	}
	if lastText != nil && lastSender != nil && lastAt != nil {
		c.LastMessage = &chat.Message{
			ChatID:    c.ID,
			SenderID:  *lastSender,
			Content:   *lastText,
			CreatedAt: *lastAt,
		}
	}
	return c, nil
}
