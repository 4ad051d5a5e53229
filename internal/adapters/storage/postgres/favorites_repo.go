package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/favorites"
)

type FavoritesRepo struct {
	db *sql.DB
}

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo {
	return &FavoritesRepo{db: db}
}

// Insert es condicional sobre la unique (user_id, pet_id): si otra llamada
// concurrente ya insertó el par, ON CONFLICT no toca nada y devolvemos false.
func (r *FavoritesRepo) Insert(ctx context.Context, f favorites.Favorite) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, pet_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, pet_id) DO NOTHING
	`, f.ID, f.UserID, f.PetID, f.CreatedAt)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *FavoritesRepo) Delete(ctx context.Context, userID, petID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *FavoritesRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND pet_id = $2)`,
		userID, petID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []favorites.Favorite{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, pet_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]favorites.Favorite, 0)
	for rows.Next() {
		var f favorites.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PetID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FavoritesRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE pet_id = $1`, petID)
	return err
}
