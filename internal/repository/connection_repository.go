package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/connection"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound   = errors.New("connection request not found")
	ErrRequestNotPending = errors.New("connection request already resolved")
	ErrDuplicateRequest  = errors.New("pending request already exists")
)

type ConnectionRepository interface {
	CreateRequest(ctx context.Context, req connection.Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (connection.Request, error)
	ListIncomingRequests(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]connection.Request, error)

	// Accept flips a pending request to accepted and records both
	// connection rows in one transaction. Adding an already-present
	// connection is a no-op, so re-running is harmless.
	Accept(ctx context.Context, id uuid.UUID) (connection.Request, error)
	Reject(ctx context.Context, id uuid.UUID) (connection.Request, error)

	AreConnected(ctx context.Context, a, b uuid.UUID) (bool, error)
	HasPendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	ListConnections(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

const requestColumns = `
id, from_user_id, to_user_id, status, COALESCE(message, ''),
COALESCE(requester_will_learn, ''), COALESCE(recipient_will_learn, ''), created_at`

func (r *PostgresConnectionRepository) CreateRequest(ctx context.Context, req connection.Request) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO connection_requests
	(id, from_user_id, to_user_id, status, message, requester_will_learn, recipient_will_learn)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.FromUserID, req.ToUserID, req.Status,
		req.Message, req.ExchangeDetails.RequesterWillLearn, req.ExchangeDetails.RecipientWillLearn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRequest
		}
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresConnectionRepository) GetRequest(ctx context.Context, id uuid.UUID) (connection.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM connection_requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (r *PostgresConnectionRepository) ListIncomingRequests(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]connection.Request, error) {
	q := `SELECT ` + requestColumns + ` FROM connection_requests WHERE to_user_id = $1`
	if pendingOnly {
		q += ` AND status = 'pending'`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connection.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresConnectionRepository) Accept(ctx context.Context, id uuid.UUID) (connection.Request, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return connection.Request{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `
UPDATE connection_requests SET status = 'accepted', updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING `+requestColumns, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return connection.Request{}, r.classifyMissing(ctx, id)
		}
		return connection.Request{}, err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO connections (user_id, peer_id) VALUES ($1, $2), ($2, $1)
ON CONFLICT DO NOTHING`, req.ToUserID, req.FromUserID); err != nil {
		return connection.Request{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return connection.Request{}, err
	}
	return req, nil
}

func (r *PostgresConnectionRepository) Reject(ctx context.Context, id uuid.UUID) (connection.Request, error) {
	row := r.db.QueryRow(ctx, `
UPDATE connection_requests SET status = 'rejected', updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING `+requestColumns, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return connection.Request{}, r.classifyMissing(ctx, id)
		}
		return connection.Request{}, err
	}
	return req, nil
}

// classifyMissing tells a request that never existed apart from one that was
// already resolved by a concurrent responder.
func (r *PostgresConnectionRepository) classifyMissing(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetRequest(ctx, id); err != nil {
		return err
	}
	return ErrRequestNotPending
}

func (r *PostgresConnectionRepository) AreConnected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM connections WHERE user_id = $1 AND peer_id = $2)`, a, b).Scan(&exists)
	return exists, err
}

func (r *PostgresConnectionRepository) HasPendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM connection_requests
	WHERE status = 'pending'
	  AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
)`, a, b).Scan(&exists)
	return exists, err
}

func (r *PostgresConnectionRepository) ListConnections(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT peer_id FROM connections WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanRequest(row database.Row) (connection.Request, error) {
	var req connection.Request
	if err := row.Scan(
		&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &req.Message,
		&req.ExchangeDetails.RequesterWillLearn, &req.ExchangeDetails.RecipientWillLearn, &req.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return connection.Request{}, ErrRequestNotFound
		}
		return connection.Request{}, err
	}
	return req, nil
}
