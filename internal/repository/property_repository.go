package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// PropertyRepository defines persistence access for one property table.
// Residential and commercial listings share the shape, so a single
// implementation is parameterized by table name.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	ListPending(ctx context.Context) ([]domain.Property, error)
	ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error
}

type propertyRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewResidentialPropertyRepository returns the residential_properties repository.
func NewResidentialPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool, table: "residential_properties"}
}

// NewCommercialPropertyRepository returns the commercial_properties repository.
func NewCommercialPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool, table: "commercial_properties"}
}

const propertyColumns = `
        id, added_by, name, description, physical_address, city, price,
        bedrooms, bathrooms, size_sqft, status, approved, approved_by,
        approved_at, rejection_reason, created_at, updated_at`

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
        INSERT INTO ` + r.table + ` (added_by, name, description, physical_address,
                                     city, price, bedrooms, bathrooms, size_sqft)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, status, approved, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.AddedBy,
		property.Name,
		property.Description,
		property.PhysicalAddress,
		property.City,
		property.Price,
		property.Bedrooms,
		property.Bathrooms,
		property.SizeSqft,
	).Scan(&property.ID, &property.Status, &property.Approved, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM ` + r.table + ` WHERE id=$1`

	var property domain.Property
	if err := scanProperty(r.pool.QueryRow(ctx, query, id), &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM ` + r.table + ` ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *propertyRepository) ListPending(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM ` + r.table + `
        WHERE status='pending' ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *propertyRepository) list(ctx context.Context, query string) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := scanProperty(rows, &property); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}

// ApplyDecision writes the whole approval transition in one statement.
func (r *propertyRepository) ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error {
	query := `
        UPDATE ` + r.table + ` SET status=$1, approved=$2, approved_by=$3,
               approved_at=$4, rejection_reason=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		dec.Status,
		dec.Flag,
		dec.ActorID,
		dec.DecidedAt,
		dec.Reason,
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

func scanProperty(row pgx.Row, property *domain.Property) error {
	return row.Scan(
		&property.ID,
		&property.AddedBy,
		&property.Name,
		&property.Description,
		&property.PhysicalAddress,
		&property.City,
		&property.Price,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.SizeSqft,
		&property.Status,
		&property.Approved,
		&property.ApprovedBy,
		&property.ApprovedAt,
		&property.RejectionReason,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
}
