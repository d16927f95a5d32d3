package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recyclo/cashbook/internal/domain"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	var detailJSON []byte
	var err error

	if log.Detail != nil {
		detailJSON, err = json.Marshal(log.Detail)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, resource_type, resource_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		log.ID,
		log.ActorID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		detailJSON,
		log.CreatedAt,
	)

	return err
}
