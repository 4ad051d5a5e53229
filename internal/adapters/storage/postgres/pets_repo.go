package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-adoption-market/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, publisher_id,
	name, species, breed, age_years, age_months, gender, size, color,
	description, health_status, vaccination_status, location, requirements,
	status, images,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := json.Marshal(imagesOrEmpty(p.Images))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		p.ID,
		p.PublisherID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.AgeYears),
		toNullInt(p.AgeMonths),
		p.Gender,
		p.Size,
		p.Color,
		p.Description,
		p.HealthStatus,
		p.VaccinationStatus,
		p.Location,
		p.Requirements,
		p.Status,
		images,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	images, err := json.Marshal(imagesOrEmpty(p.Images))
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			age_years = $5,
			age_months = $6,
			gender = $7,
			size = $8,
			color = $9,
			description = $10,
			health_status = $11,
			vaccination_status = $12,
			location = $13,
			requirements = $14,
			status = $15,
			images = $16,
			updated_at = $17
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.AgeYears),
		toNullInt(p.AgeMonths),
		p.Gender,
		p.Size,
		p.Color,
		p.Description,
		p.HealthStatus,
		p.VaccinationStatus,
		p.Location,
		p.Requirements,
		p.Status,
		images,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListAvailable(ctx context.Context, f pets.Filters) ([]pets.Pet, error) {
	where := []string{"status = 'available'"}
	args := []any{}

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Species != "" {
		add("species = $%d", f.Species)
	}
	if f.Gender != "" {
		add("gender = $%d", f.Gender)
	}
	if f.Size != "" {
		add("size = $%d", f.Size)
	}
	if f.Location != "" {
		add("location = $%d", f.Location)
	}
	if f.Search != "" {
		// substring case-insensitive sobre name O breed
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR breed ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + petColumns + ` FROM pets WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListByPublisher(ctx context.Context, publisherID string) ([]pets.Pet, error) {
	publisherID = strings.TrimSpace(publisherID)
	if publisherID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE publisher_id = $1
		ORDER BY created_at DESC
	`, publisherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var ageYears, ageMonths sql.NullInt64
	var images []byte

	if err := row.Scan(
		&p.ID,
		&p.PublisherID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&ageYears,
		&ageMonths,
		&p.Gender,
		&p.Size,
		&p.Color,
		&p.Description,
		&p.HealthStatus,
		&p.VaccinationStatus,
		&p.Location,
		&p.Requirements,
		&p.Status,
		&images,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.AgeYears = fromNullInt(ageYears)
	p.AgeMonths = fromNullInt(ageMonths)

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return pets.Pet{}, err
		}
	}
	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
