package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

// Insert con ON CONFLICT DO NOTHING: el duplicado del primer login
// concurrente no es error, se reporta created=false.
func (r *ProfilesRepo) Insert(ctx context.Context, p profiles.Profile) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users_profile (id, full_name, avatar_url, role, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING
	`,
		p.ID,
		p.FullName,
		p.AvatarURL,
		p.Role,
		p.Phone,
		p.Address,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users_profile (id, full_name, avatar_url, role, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone = EXCLUDED.phone,
		    address = EXCLUDED.address,
		    updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		p.FullName,
		p.AvatarURL,
		p.Role,
		p.Phone,
		p.Address,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	var p profiles.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, avatar_url, role, phone, address, created_at, updated_at
		FROM users_profile
		WHERE id = $1
	`, id).Scan(
		&p.ID,
		&p.FullName,
		&p.AvatarURL,
		&p.Role,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}
