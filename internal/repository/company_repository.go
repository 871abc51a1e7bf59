package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// CompanyRepository defines persistence access for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

const companyColumns = `
        id, created_by, name, registration_number, email, phone, address, website,
        status, verified, verified_by, verified_at, verification_notes,
        created_at, updated_at`

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (created_by, name, registration_number, email, phone, address, website)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, status, verified, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		company.CreatedBy,
		company.Name,
		company.RegistrationNumber,
		company.Email,
		company.Phone,
		company.Address,
		company.Website,
	).Scan(&company.ID, &company.Status, &company.Verified, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id=$1`

	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.CreatedBy,
		&company.Name,
		&company.RegistrationNumber,
		&company.Email,
		&company.Phone,
		&company.Address,
		&company.Website,
		&company.Status,
		&company.Verified,
		&company.VerifiedBy,
		&company.VerifiedAt,
		&company.VerificationNotes,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID,
			&company.CreatedBy,
			&company.Name,
			&company.RegistrationNumber,
			&company.Email,
			&company.Phone,
			&company.Address,
			&company.Website,
			&company.Status,
			&company.Verified,
			&company.VerifiedBy,
			&company.VerifiedAt,
			&company.VerificationNotes,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// ApplyDecision writes the whole verification transition in one statement.
func (r *companyRepository) ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error {
	const query = `
        UPDATE companies SET status=$1, verified=$2, verified_by=$3, verified_at=$4,
               verification_notes=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		dec.Status,
		dec.Flag,
		dec.ActorID,
		dec.DecidedAt,
		dec.Notes,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
