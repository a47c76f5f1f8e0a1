package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillForbidden = errors.New("skill does not belong to user")
)

type UserSkillRepository interface {
	Add(ctx context.Context, s skill.Skill, kind skill.Kind) error
	Remove(ctx context.Context, userID, skillID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, kind skill.Kind) ([]skill.Skill, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) Add(ctx context.Context, s skill.Skill, kind skill.Kind) error {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO user_skills (id, user_id, kind, name, category, level, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.OwnerID, kind, s.Name, s.Category, s.Level, tags,
	)
	if err != nil && isForeignKeyViolation(err) {
		return ErrUserNotFound
	}
	return err
}

func (r *PostgresUserSkillRepository) Remove(ctx context.Context, userID, skillID uuid.UUID) error {
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, skillID).Scan(&ownerID)
	if err != nil {
		if isNoRows(err) {
			return ErrSkillNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrSkillForbidden
	}

	affected, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, skillID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID, kind skill.Kind) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, user_id, name, category, level, tags
FROM user_skills WHERE user_id = $1 AND kind = $2 ORDER BY created_at ASC`, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Category, &s.Level, &s.Tags); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
