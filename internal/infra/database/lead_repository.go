package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// invalid_text_representation: a malformed uuid can never match a row.
const pgInvalidTextRepresentation = "22P02"

const leadColumns = `id, status, assigned_to, notes, contact_fields, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	fields, err := json.Marshal(lead.ContactFields)
	if err != nil {
		return fmt.Errorf("encode contact fields: %w", err)
	}

	query := `
		INSERT INTO leads (id, status, assigned_to, notes, contact_fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		string(lead.Status),
		nullable(lead.AssignedTo),
		nullable(lead.Notes),
		string(fields),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return lead, nil
}

// Update applies only the fields present in the patch in a single statement, so
// concurrent patches to the same lead are serialized by the row lock and never
// clobber each other's untouched columns. An empty assignedTo or notes clears
// the column back to NULL.
func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	var status interface{}
	if patch.Status != nil {
		status = string(*patch.Status)
	}

	query := `
		UPDATE leads SET
			status      = COALESCE($2, status),
			assigned_to = CASE WHEN $3::text IS NULL THEN assigned_to ELSE NULLIF($3::text, '') END,
			notes       = CASE WHEN $4::text IS NULL THEN notes ELSE NULLIF($4::text, '') END,
			updated_at  = $5
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query,
		id,
		status,
		nullable(patch.AssignedTo),
		nullable(patch.Notes),
		time.Now().UTC(),
	))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter, limit, offset int) ([]*entity.Lead, int, error) {
	status := string(filter.Status)

	var total int
	countQuery := `SELECT COUNT(*) FROM leads WHERE ($1 = '' OR status = $1)`
	if err := r.DB.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// CountAwaitingContact counts leads still in "new" that were created before cutoff.
func (r *LeadRepository) CountAwaitingContact(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM leads WHERE status = 'new' AND created_at < $1`
	err := r.DB.QueryRowContext(ctx, query, cutoff).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		status     string
		assignedTo sql.NullString
		notes      sql.NullString
		rawFields  []byte
	)

	err := row.Scan(
		&lead.ID,
		&status,
		&assignedTo,
		&notes,
		&rawFields,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Status = entity.LeadStatus(status)
	if assignedTo.Valid {
		lead.AssignedTo = &assignedTo.String
	}
	if notes.Valid {
		lead.Notes = &notes.String
	}

	lead.ContactFields = entity.ContactFields{}
	if len(rawFields) > 0 {
		if err := json.Unmarshal(rawFields, &lead.ContactFields); err != nil {
			return nil, fmt.Errorf("decode contact fields: %w", err)
		}
	}

	return &lead, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return entity.ErrLeadNotFound
	}
	return err
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
