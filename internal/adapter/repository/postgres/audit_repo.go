package postgres

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duepay/payables/internal/domain"
)

// AuditRepository implements audit log persistence.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	var beforeStateJSON, afterStateJSON []byte
	var err error

	if log.BeforeState != nil {
		beforeStateJSON, err = json.Marshal(log.BeforeState)
		if err != nil {
			return err
		}
	}

	if log.AfterState != nil {
		afterStateJSON, err = json.Marshal(log.AfterState)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, tenant_id, action, resource_type, resource_id, request_id,
			before_state, after_state, status, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		log.ID,
		log.TenantID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.RequestID,
		beforeStateJSON,
		afterStateJSON,
		log.Status,
		log.ErrorMessage,
		log.CreatedAt,
	)

	return err
}

// List retrieves audit logs with filtering.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, tenant_id, action, resource_type, resource_id, request_id,
		       before_state, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE tenant_id = $1
	`

	args := []any{filter.TenantID}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += ` AND action = $` + strconv.Itoa(len(args))
	}

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += ` AND resource_type = $` + strconv.Itoa(len(args))
	}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += ` AND resource_id = $` + strconv.Itoa(len(args))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log         domain.AuditLog
			beforeState []byte
			afterState  []byte
		)

		err := rows.Scan(
			&log.ID,
			&log.TenantID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&log.RequestID,
			&beforeState,
			&afterState,
			&log.Status,
			&log.ErrorMessage,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(beforeState) > 0 {
			if err := json.Unmarshal(beforeState, &log.BeforeState); err != nil {
				return nil, err
			}
		}

		if len(afterState) > 0 {
			if err := json.Unmarshal(afterState, &log.AfterState); err != nil {
				return nil, err
			}
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
