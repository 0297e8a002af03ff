package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type itemTypeRepositoryImpl struct {
	db *database.DB
}

func NewItemTypeRepository(db *database.DB) itemtype.ItemTypeRepository {
	return &itemTypeRepositoryImpl{db: db}
}

const itemTypeColumns = `
	id, code, name,
	subject_to_ahv, subject_to_alv, subject_to_nbu, subject_to_bvg, subject_to_qst,
	is_active, sort_order, created_at, updated_at
`

// Create implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) Create(ctx context.Context, t itemtype.ItemType) (itemtype.ItemType, error) {
	query := `
		INSERT INTO payroll_item_types (
			id, code, name,
			subject_to_ahv, subject_to_alv, subject_to_nbu, subject_to_bvg, subject_to_qst,
			is_active, sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + itemTypeColumns

	created, err := scanItemType(r.db.Pool.QueryRow(ctx, query,
		t.ID, t.Code, t.Name,
		t.SubjectToAhv, t.SubjectToAlv, t.SubjectToNbu, t.SubjectToBvg, t.SubjectToQst,
		t.IsActive, t.SortOrder,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return itemtype.ItemType{}, itemtype.ErrItemTypeCodeExists
		}
		return itemtype.ItemType{}, fmt.Errorf("failed to create item type: %w", err)
	}
	return created, nil
}

// GetByCode implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (itemtype.ItemType, error) {
	query := `SELECT ` + itemTypeColumns + ` FROM payroll_item_types WHERE code = $1`

	found, err := scanItemType(r.db.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return itemtype.ItemType{}, itemtype.ErrItemTypeNotFound
		}
		return itemtype.ItemType{}, fmt.Errorf("failed to get item type %s: %w", code, err)
	}
	return found, nil
}

// List implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]itemtype.ItemType, error) {
	query := `SELECT ` + itemTypeColumns + ` FROM payroll_item_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order, code`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list item types: %w", err)
	}
	defer rows.Close()

	types := make([]itemtype.ItemType, 0)
	for rows.Next() {
		t, err := scanItemType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Update implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) Update(ctx context.Context, id string, t itemtype.ItemType) (itemtype.ItemType, error) {
	query := `
		UPDATE payroll_item_types SET
			code = $2, name = $3,
			subject_to_ahv = $4, subject_to_alv = $5, subject_to_nbu = $6,
			subject_to_bvg = $7, subject_to_qst = $8,
			is_active = $9, sort_order = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + itemTypeColumns

	updated, err := scanItemType(r.db.Pool.QueryRow(ctx, query,
		id, t.Code, t.Name,
		t.SubjectToAhv, t.SubjectToAlv, t.SubjectToNbu, t.SubjectToBvg, t.SubjectToQst,
		t.IsActive, t.SortOrder,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return itemtype.ItemType{}, itemtype.ErrItemTypeNotFound
		}
		if isUniqueViolation(err) {
			return itemtype.ItemType{}, itemtype.ErrItemTypeCodeExists
		}
		return itemtype.ItemType{}, fmt.Errorf("failed to update item type %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM payroll_item_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item type %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return itemtype.ErrItemTypeNotFound
	}
	return nil
}

// Count implements itemtype.ItemTypeRepository.
func (r *itemTypeRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_item_types`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count item types: %w", err)
	}
	return count, nil
}

func scanItemType(row pgx.Row) (itemtype.ItemType, error) {
	var t itemtype.ItemType
	err := row.Scan(
		&t.ID, &t.Code, &t.Name,
		&t.SubjectToAhv, &t.SubjectToAlv, &t.SubjectToNbu, &t.SubjectToBvg, &t.SubjectToQst,
		&t.IsActive, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
