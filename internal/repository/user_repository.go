package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/connection"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type UpdateProfileFields struct {
	DisplayName *string
	Bio         *string
	PhotoURL    *string
}

type UserRepository interface {
	CreateAccount(ctx context.Context, acc user.Account, displayName string) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (user.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (user.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error)
	ListProfilesExcluding(ctx context.Context, id uuid.UUID) ([]user.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fields UpdateProfileFields) error
	TouchLastActive(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateAccount(ctx context.Context, acc user.Account, displayName string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name) VALUES ($1, $2, $3, $4)`,
		acc.ID, acc.Email, acc.PasswordHash, displayName,
	)
	return err
}

func (r *PostgresUserRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (user.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *PostgresUserRepository) GetAccountByEmail(ctx context.Context, email string) (user.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, email, display_name, COALESCE(bio, ''), COALESCE(photo_url, ''), rating, last_active, created_at
FROM users WHERE id = $1`, id)

	p, err := scanProfileBase(row)
	if err != nil {
		return user.Profile{}, err
	}

	skills, err := r.loadSkills(ctx, `WHERE user_id = $1`, id)
	if err != nil {
		return user.Profile{}, err
	}
	p.Skills = skills[id][skill.KindOwned]
	p.DesiredSkills = skills[id][skill.KindDesired]

	conns, err := r.loadConnections(ctx, `WHERE user_id = $1`, id)
	if err != nil {
		return user.Profile{}, err
	}
	p.Connections = conns[id]

	pending, err := r.loadPendingRequests(ctx, `AND to_user_id = $1`, id)
	if err != nil {
		return user.Profile{}, err
	}
	p.PendingRequests = pending[id]

	return p, nil
}

func (r *PostgresUserRepository) ListProfilesExcluding(ctx context.Context, id uuid.UUID) ([]user.Profile, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, email, display_name, COALESCE(bio, ''), COALESCE(photo_url, ''), rating, last_active, created_at
FROM users WHERE id <> $1 ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]user.Profile, 0)
	for rows.Next() {
		p, err := scanProfileBase(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.loadSkills(ctx, `WHERE user_id <> $1`, id)
	if err != nil {
		return nil, err
	}
	conns, err := r.loadConnections(ctx, `WHERE user_id <> $1`, id)
	if err != nil {
		return nil, err
	}
	pending, err := r.loadPendingRequests(ctx, `AND to_user_id <> $1`, id)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		uid := profiles[i].ID
		profiles[i].Skills = skills[uid][skill.KindOwned]
		profiles[i].DesiredSkills = skills[uid][skill.KindDesired]
		profiles[i].Connections = conns[uid]
		profiles[i].PendingRequests = pending[uid]
	}
	return profiles, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields UpdateProfileFields) error {
	affected, err := r.db.Exec(ctx, `
UPDATE users SET
	display_name = COALESCE($2, display_name),
	bio = COALESCE($3, bio),
	photo_url = COALESCE($4, photo_url),
	updated_at = now()
WHERE id = $1`,
		id, fields.DisplayName, fields.Bio, fields.PhotoURL,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_active = now() WHERE id = $1`, id)
	return err
}

func (r *PostgresUserRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET rating = $2, updated_at = now() WHERE id = $1`, id, rating)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type skillsByUser map[uuid.UUID]map[skill.Kind][]skill.Skill

func (r *PostgresUserRepository) loadSkills(ctx context.Context, where string, args ...any) (skillsByUser, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, user_id, kind, name, category, level, tags
FROM user_skills `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := skillsByUser{}
	for rows.Next() {
		var s skill.Skill
		var kind skill.Kind
		if err := rows.Scan(&s.ID, &s.OwnerID, &kind, &s.Name, &s.Category, &s.Level, &s.Tags); err != nil {
			return nil, err
		}
		if out[s.OwnerID] == nil {
			out[s.OwnerID] = map[skill.Kind][]skill.Skill{}
		}
		out[s.OwnerID][kind] = append(out[s.OwnerID][kind], s)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) loadConnections(ctx context.Context, where string, args ...any) (map[uuid.UUID][]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, peer_id FROM connections `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID][]uuid.UUID{}
	for rows.Next() {
		var uid, peer uuid.UUID
		if err := rows.Scan(&uid, &peer); err != nil {
			return nil, err
		}
		out[uid] = append(out[uid], peer)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) loadPendingRequests(ctx context.Context, where string, args ...any) (map[uuid.UUID][]connection.Request, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, from_user_id, to_user_id, status, COALESCE(message, ''),
       COALESCE(requester_will_learn, ''), COALESCE(recipient_will_learn, ''), created_at
FROM connection_requests WHERE status = 'pending' `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID][]connection.Request{}
	for rows.Next() {
		var req connection.Request
		if err := rows.Scan(
			&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &req.Message,
			&req.ExchangeDetails.RequesterWillLearn, &req.ExchangeDetails.RecipientWillLearn, &req.CreatedAt,
		); err != nil {
			return nil, err
		}
		out[req.ToUserID] = append(out[req.ToUserID], req)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (user.Account, error) {
	var a user.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.Account{}, ErrUserNotFound
		}
		return user.Account{}, err
	}
	return a, nil
}

func scanProfileBase(row scanner) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.Bio, &p.PhotoURL, &p.Rating, &p.LastActive, &p.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
