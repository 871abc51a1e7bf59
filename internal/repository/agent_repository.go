package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// AgentRepository defines persistence access for agent profiles.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository returns a Postgres-backed implementation.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

const agentColumns = `
        id, user_id, id_or_passport_number, physical_address, office_address,
        license_serial_number, license_issued_at, status, verified, verified_by,
        verified_at, verification_notes, created_at, updated_at`

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (user_id, id_or_passport_number, physical_address,
                            office_address, license_serial_number, license_issued_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, status, verified, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		agent.UserID,
		agent.IDOrPassportNumber,
		agent.PhysicalAddress,
		agent.OfficeAddress,
		agent.LicenseSerialNumber,
		agent.LicenseIssuedAt,
	).Scan(&agent.ID, &agent.Status, &agent.Verified, &agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return r.getWhere(ctx, "id=$1", id)
}

func (r *agentRepository) GetByUserID(ctx context.Context, userID string) (*domain.Agent, error) {
	return r.getWhere(ctx, "user_id=$1", userID)
}

func (r *agentRepository) getWhere(ctx context.Context, cond string, arg any) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE ` + cond

	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&agent.ID,
		&agent.UserID,
		&agent.IDOrPassportNumber,
		&agent.PhysicalAddress,
		&agent.OfficeAddress,
		&agent.LicenseSerialNumber,
		&agent.LicenseIssuedAt,
		&agent.Status,
		&agent.Verified,
		&agent.VerifiedBy,
		&agent.VerifiedAt,
		&agent.VerificationNotes,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.UserID,
			&agent.IDOrPassportNumber,
			&agent.PhysicalAddress,
			&agent.OfficeAddress,
			&agent.LicenseSerialNumber,
			&agent.LicenseIssuedAt,
			&agent.Status,
			&agent.Verified,
			&agent.VerifiedBy,
			&agent.VerifiedAt,
			&agent.VerificationNotes,
			&agent.CreatedAt,
			&agent.UpdatedAt,
		); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// ApplyDecision writes the whole verification transition in one statement.
func (r *agentRepository) ApplyDecision(ctx context.Context, id string, dec domain.DecisionUpdate) error {
	const query = `
        UPDATE agents SET status=$1, verified=$2, verified_by=$3, verified_at=$4,
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
