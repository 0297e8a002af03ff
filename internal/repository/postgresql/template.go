package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type templateRepositoryImpl struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) payroll.TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

const templateColumns = `id, name, payload, created_at, updated_at`

// Create implements payroll.TemplateRepository.
func (r *templateRepositoryImpl) Create(ctx context.Context, t payroll.Template) (payroll.Template, error) {
	query := `
		INSERT INTO payroll_templates (id, name, payload)
		VALUES ($1, $2, $3)
		RETURNING ` + templateColumns

	created, err := scanTemplate(r.db.Pool.QueryRow(ctx, query, t.ID, t.Name, t.Payload))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Template{}, payroll.ErrTemplateNameExists
		}
		return payroll.Template{}, fmt.Errorf("failed to create template: %w", err)
	}
	return created, nil
}

// GetByID implements payroll.TemplateRepository.
func (r *templateRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM payroll_templates WHERE id = $1`

	found, err := scanTemplate(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Template{}, payroll.ErrTemplateNotFound
		}
		return payroll.Template{}, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	return found, nil
}

// List implements payroll.TemplateRepository.
func (r *templateRepositoryImpl) List(ctx context.Context) ([]payroll.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM payroll_templates ORDER BY name`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]payroll.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Update implements payroll.TemplateRepository.
func (r *templateRepositoryImpl) Update(ctx context.Context, id string, t payroll.Template) (payroll.Template, error) {
	query := `
		UPDATE payroll_templates SET name = $2, payload = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + templateColumns

	updated, err := scanTemplate(r.db.Pool.QueryRow(ctx, query, id, t.Name, t.Payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Template{}, payroll.ErrTemplateNotFound
		}
		if isUniqueViolation(err) {
			return payroll.Template{}, payroll.ErrTemplateNameExists
		}
		return payroll.Template{}, fmt.Errorf("failed to update template %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements payroll.TemplateRepository.
func (r *templateRepositoryImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM payroll_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (payroll.Template, error) {
	var t payroll.Template
	err := row.Scan(&t.ID, &t.Name, &t.Payload, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
