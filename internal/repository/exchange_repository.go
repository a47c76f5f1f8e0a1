package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/exchange"

	"github.com/google/uuid"
)

var (
	ErrExchangeNotFound   = errors.New("skill exchange not found")
	ErrInvalidTransition  = errors.New("invalid exchange status transition")
	ErrExchangeRated      = errors.New("exchange already rated")
	ErrExchangeNotRatable = errors.New("exchange not completed")
)

type ExchangeRepository interface {
	Create(ctx context.Context, ex exchange.Exchange) error
	GetByID(ctx context.Context, id uuid.UUID) (exchange.Exchange, error)

	// Transition applies a conditional update: the row moves to target only
	// if its current status is one of prior. A stale or concurrent caller
	// gets ErrInvalidTransition instead of silently overwriting.
	Transition(ctx context.Context, id uuid.UUID, prior []exchange.Status, target exchange.Status) (exchange.Exchange, error)

	// SetRating stores rating and feedback once, only on a completed
	// exchange that has not been rated yet.
	SetRating(ctx context.Context, id uuid.UUID, rating float64, feedback string) (exchange.Exchange, error)

	TeacherAverageRating(ctx context.Context, teacherID uuid.UUID) (float64, error)
	ListForUser(ctx context.Context, userID uuid.UUID, role exchange.Role, status exchange.Status) ([]exchange.Exchange, error)
}

type PostgresExchangeRepository struct {
	db database.DB
}

func NewPostgresExchangeRepository(db database.DB) *PostgresExchangeRepository {
	return &PostgresExchangeRepository{db: db}
}

const exchangeColumns = `
id, teacher_id, student_id, skill_id, status, start_date, end_date,
rating, COALESCE(feedback, ''), rated_at, created_at`

func (r *PostgresExchangeRepository) Create(ctx context.Context, ex exchange.Exchange) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO skill_exchanges (id, teacher_id, student_id, skill_id, status)
VALUES ($1, $2, $3, $4, $5)`,
		ex.ID, ex.TeacherID, ex.StudentID, ex.SkillID, ex.Status,
	)
	if err != nil && isForeignKeyViolation(err) {
		return ErrUserNotFound
	}
	return err
}

func (r *PostgresExchangeRepository) GetByID(ctx context.Context, id uuid.UUID) (exchange.Exchange, error) {
	row := r.db.QueryRow(ctx, `SELECT `+exchangeColumns+` FROM skill_exchanges WHERE id = $1`, id)
	return scanExchange(row)
}

func (r *PostgresExchangeRepository) Transition(ctx context.Context, id uuid.UUID, prior []exchange.Status, target exchange.Status) (exchange.Exchange, error) {
	priorStrs := make([]string, 0, len(prior))
	for _, s := range prior {
		priorStrs = append(priorStrs, string(s))
	}

	// Entering in_progress refreshes start_date; completing stamps end_date.
	row := r.db.QueryRow(ctx, `
UPDATE skill_exchanges SET
	status = $2,
	start_date = CASE WHEN $2 = 'in_progress' THEN now() ELSE start_date END,
	end_date   = CASE WHEN $2 = 'completed' THEN now() ELSE end_date END
WHERE id = $1 AND status = ANY($3)
RETURNING `+exchangeColumns, id, target, priorStrs)

	ex, err := scanExchange(row)
	if err != nil {
		if errors.Is(err, ErrExchangeNotFound) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return exchange.Exchange{}, getErr
			}
			return exchange.Exchange{}, ErrInvalidTransition
		}
		return exchange.Exchange{}, err
	}
	return ex, nil
}

func (r *PostgresExchangeRepository) SetRating(ctx context.Context, id uuid.UUID, rating float64, feedback string) (exchange.Exchange, error) {
	row := r.db.QueryRow(ctx, `
UPDATE skill_exchanges SET rating = $2, feedback = $3, rated_at = now()
WHERE id = $1 AND status = 'completed' AND rating IS NULL
RETURNING `+exchangeColumns, id, rating, feedback)

	ex, err := scanExchange(row)
	if err == nil {
		return ex, nil
	}
	if !errors.Is(err, ErrExchangeNotFound) {
		return exchange.Exchange{}, err
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return exchange.Exchange{}, getErr
	}
	if current.Rating != nil {
		return exchange.Exchange{}, ErrExchangeRated
	}
	return exchange.Exchange{}, ErrExchangeNotRatable
}

func (r *PostgresExchangeRepository) TeacherAverageRating(ctx context.Context, teacherID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(AVG(rating), 0)
FROM skill_exchanges
WHERE teacher_id = $1 AND status = 'completed' AND rating IS NOT NULL`, teacherID).Scan(&avg)
	return avg, err
}

func (r *PostgresExchangeRepository) ListForUser(ctx context.Context, userID uuid.UUID, role exchange.Role, status exchange.Status) ([]exchange.Exchange, error) {
	q := `SELECT ` + exchangeColumns + ` FROM skill_exchanges WHERE `
	switch role {
	case exchange.RoleTeacher:
		q += `teacher_id = $1`
	case exchange.RoleStudent:
		q += `student_id = $1`
	default:
		q += `(teacher_id = $1 OR student_id = $1)`
	}

	args := []any{userID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]exchange.Exchange, 0)
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func scanExchange(row database.Row) (exchange.Exchange, error) {
	var ex exchange.Exchange
	if err := row.Scan(
		&ex.ID, &ex.TeacherID, &ex.StudentID, &ex.SkillID, &ex.Status,
		&ex.StartDate, &ex.EndDate, &ex.Rating, &ex.Feedback, &ex.RatedAt, &ex.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return exchange.Exchange{}, ErrExchangeNotFound
		}
		return exchange.Exchange{}, err
	}
	return ex, nil
}
