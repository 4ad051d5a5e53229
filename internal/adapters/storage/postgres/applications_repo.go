package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption-market/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, pet_id, applicant_id,
	applicant_name, applicant_email, applicant_phone, applicant_address,
	housing_type, has_experience, other_pets, reason,
	status, created_at, updated_at`

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.PetID,
		a.ApplicantID,
		a.ApplicantName,
		a.ApplicantEmail,
		a.ApplicantPhone,
		a.ApplicantAddress,
		a.HousingType,
		a.HasExperience,
		a.OtherPets,
		a.Reason,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, a.ID, a.Status, a.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return applications.ErrNotFound
	}
	return nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, applications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1`, id)

	a, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return applications.Application{}, applications.ErrNotFound
		}
		return applications.Application{}, err
	}
	return a, nil
}

func (r *ApplicationsRepo) ListByApplicant(ctx context.Context, applicantID string) ([]applications.Application, error) {
	applicantID = strings.TrimSpace(applicantID)
	if applicantID == "" {
		return []applications.Application{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListByPets(ctx context.Context, petIDs []string) ([]applications.Application, error) {
	if len(petIDs) == 0 {
		return []applications.Application{}, nil
	}

	placeholders := make([]string, 0, len(petIDs))
	args := make([]any, 0, len(petIDs))
	for i, id := range petIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE pet_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListPendingByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE pet_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM adoption_applications WHERE pet_id = $1`, petID)
	return err
}

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.ApplicantID,
		&a.ApplicantName,
		&a.ApplicantEmail,
		&a.ApplicantPhone,
		&a.ApplicantAddress,
		&a.HousingType,
		&a.HasExperience,
		&a.OtherPets,
		&a.Reason,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return applications.Application{}, err
	}
	return a, nil
}

func collectApplications(rows *sql.Rows) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
