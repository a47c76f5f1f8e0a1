package repository

import (
	"context"
	"encoding/json"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/progress"

	"github.com/google/uuid"
)

var (
	ErrProgressNotFound = errors.New("progress record not found")
	ErrProgressExists   = errors.New("progress record already exists for exchange")
)

type ProgressRepository interface {
	Create(ctx context.Context, p progress.Progress) error
	GetByExchange(ctx context.Context, exchangeID uuid.UUID) (progress.Progress, error)
	Update(ctx context.Context, p progress.Progress) error
}

type PostgresProgressRepository struct {
	db database.DB
}

func NewPostgresProgressRepository(db database.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

func (r *PostgresProgressRepository) Create(ctx context.Context, p progress.Progress) error {
	milestones, err := marshalMilestones(p.Milestones)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
INSERT INTO skill_progress (id, skill_exchange_id, progress_percentage, milestones, notes)
VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.SkillExchangeID, p.ProgressPercentage, milestones, p.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProgressExists
		}
		if isForeignKeyViolation(err) {
			return ErrExchangeNotFound
		}
	}
	return err
}

func (r *PostgresProgressRepository) GetByExchange(ctx context.Context, exchangeID uuid.UUID) (progress.Progress, error) {
	var (
		p   progress.Progress
		raw []byte
	)
	err := r.db.QueryRow(ctx, `
SELECT id, skill_exchange_id, progress_percentage, milestones, notes, updated_at
FROM skill_progress WHERE skill_exchange_id = $1`, exchangeID).Scan(
		&p.ID, &p.SkillExchangeID, &p.ProgressPercentage, &raw, &p.Notes, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return progress.Progress{}, ErrProgressNotFound
		}
		return progress.Progress{}, err
	}
	if err := json.Unmarshal(raw, &p.Milestones); err != nil {
		return progress.Progress{}, err
	}
	return p, nil
}

func (r *PostgresProgressRepository) Update(ctx context.Context, p progress.Progress) error {
	milestones, err := marshalMilestones(p.Milestones)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx, `
UPDATE skill_progress SET
	progress_percentage = $2,
	milestones = $3,
	notes = $4,
	updated_at = now()
WHERE skill_exchange_id = $1`,
		p.SkillExchangeID, p.ProgressPercentage, milestones, p.Notes,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProgressNotFound
	}
	return nil
}

func marshalMilestones(ms []progress.Milestone) ([]byte, error) {
	if ms == nil {
		ms = []progress.Milestone{}
	}
	return json.Marshal(ms)
}
