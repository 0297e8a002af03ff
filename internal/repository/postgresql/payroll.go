package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/payroll"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentColumns = `
	p.id, p.employee_id,
	p.period_start, p.period_end, p.payment_date, p.payment_month, p.payment_year,
	p.gross_salary, p.total_deductions, p.net_salary,
	p.is_locked, p.notes, p.created_at, p.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name
`

// Create implements payroll.PaymentRepository. The payment and its children
// are written in one transaction.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	var created payroll.Payment
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payroll_payments (
				id, employee_id,
				period_start, period_end, payment_date, payment_month, payment_year,
				gross_salary, total_deductions, net_salary,
				is_locked, notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err := tx.Exec(ctx, query,
			p.ID, p.EmployeeID,
			p.PeriodStart, p.PeriodEnd, p.PaymentDate, p.PaymentMonth, p.PaymentYear,
			p.GrossSalary, p.TotalDeductions, p.NetSalary,
			p.IsLocked, p.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		if err := insertChildren(ctx, tx, p.ID, p.Items, p.Deductions); err != nil {
			return err
		}

		created, err = getPayment(ctx, tx, p.ID)
		return err
	})
	if err != nil {
		return payroll.Payment{}, err
	}
	return created, nil
}

// GetByID implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payment, error) {
	return getPayment(ctx, r.db.Pool, id)
}

// List implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) List(ctx context.Context, q payroll.ListPaymentsQuery) ([]payroll.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payroll_payments p
		JOIN employees e ON e.id = p.employee_id
	`
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if q.Year != nil {
		args = append(args, *q.Year)
		conditions = append(conditions, fmt.Sprintf("p.payment_year = $%d", len(args)))
	}
	if q.Month != nil {
		args = append(args, *q.Month)
		conditions = append(conditions, fmt.Sprintf("p.payment_month = $%d", len(args)))
	}
	if q.EmployeeID != nil {
		args = append(args, *q.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.period_start, e.last_name, e.first_name, p.id"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]payroll.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadChildren(ctx, r.db.Pool, payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Update implements payroll.PaymentRepository. Children are replaced
// wholesale: old rows are deleted and the recomputed set reinserted. The lock
// flag is re-checked under FOR UPDATE so a concurrent lock cannot be raced.
func (r *paymentRepositoryImpl) Update(ctx context.Context, id string, p payroll.Payment) (payroll.Payment, error) {
	var updated payroll.Payment
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var isLocked bool
		err := tx.QueryRow(ctx,
			`SELECT is_locked FROM payroll_payments WHERE id = $1 FOR UPDATE`, id,
		).Scan(&isLocked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment %s: %w", id, err)
		}
		if isLocked {
			return payroll.ErrPaymentLocked
		}

		query := `
			UPDATE payroll_payments SET
				period_start = $2, period_end = $3, payment_date = $4,
				payment_month = $5, payment_year = $6,
				gross_salary = $7, total_deductions = $8, net_salary = $9,
				notes = $10,
				updated_at = NOW()
			WHERE id = $1
		`
		_, err = tx.Exec(ctx, query,
			id,
			p.PeriodStart, p.PeriodEnd, p.PaymentDate,
			p.PaymentMonth, p.PaymentYear,
			p.GrossSalary, p.TotalDeductions, p.NetSalary,
			p.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to update payment %s: %w", id, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM payroll_items WHERE payment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM payroll_deductions WHERE payment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment deductions: %w", err)
		}
		if err := insertChildren(ctx, tx, id, p.Items, p.Deductions); err != nil {
			return err
		}

		updated, err = getPayment(ctx, tx, id)
		return err
	})
	if err != nil {
		return payroll.Payment{}, err
	}
	return updated, nil
}

// SetLocked implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) SetLocked(ctx context.Context, id string, locked bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE payroll_payments SET is_locked = $2, updated_at = NOW() WHERE id = $1`,
		id, locked,
	)
	if err != nil {
		return fmt.Errorf("failed to set lock on payment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}

// Delete implements payroll.PaymentRepository. Locked payments are immutable
// and cannot be deleted; children go with the payment.
func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var isLocked bool
		err := tx.QueryRow(ctx,
			`SELECT is_locked FROM payroll_payments WHERE id = $1 FOR UPDATE`, id,
		).Scan(&isLocked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment %s: %w", id, err)
		}
		if isLocked {
			return payroll.ErrPaymentLocked
		}

		if _, err := tx.Exec(ctx, `DELETE FROM payroll_items WHERE payment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM payroll_deductions WHERE payment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment deductions: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM payroll_payments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment %s: %w", id, err)
		}
		return nil
	})
}

// GetCumulativeAlvData implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) GetCumulativeAlvData(ctx context.Context, employeeID string, year int, excludePaymentID *string) (payroll.CumulativeData, error) {
	return r.cumulativeData(ctx, payroll.DeductionAlv, employeeID, year, excludePaymentID)
}

// GetCumulativeNbuData implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) GetCumulativeNbuData(ctx context.Context, employeeID string, year int, excludePaymentID *string) (payroll.CumulativeData, error) {
	return r.cumulativeData(ctx, payroll.DeductionNbu, employeeID, year, excludePaymentID)
}

// cumulativeData sums the persisted base amounts of one capped deduction kind
// over the employee's year. It reads the stored deduction rows so the result
// always reflects exactly what was deducted, not a re-derivation.
func (r *paymentRepositoryImpl) cumulativeData(ctx context.Context, kind payroll.DeductionKind, employeeID string, year int, excludePaymentID *string) (payroll.CumulativeData, error) {
	query := `
		SELECT
			COALESCE(SUM(d.base_amount), 0),
			COALESCE(SUM(d.amount), 0),
			COUNT(DISTINCT p.id)
		FROM payroll_payments p
		JOIN payroll_deductions d ON d.payment_id = p.id
		WHERE p.employee_id = $1
		  AND p.payment_year = $2
		  AND d.kind = $3
	`
	args := []interface{}{employeeID, year, string(kind)}
	if excludePaymentID != nil {
		args = append(args, *excludePaymentID)
		query += fmt.Sprintf(" AND p.id <> $%d", len(args))
	}

	var data payroll.CumulativeData
	err := r.db.Pool.QueryRow(ctx, query, args...).
		Scan(&data.SubjectAmount, &data.DeductionAmount, &data.PaymentsCount)
	if err != nil {
		return payroll.CumulativeData{}, fmt.Errorf("failed to get cumulative %s data: %w", kind, err)
	}
	return data, nil
}

func getPayment(ctx context.Context, q database.Querier, id string) (payroll.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payroll_payments p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`
	p, err := scanPayment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, fmt.Errorf("failed to get payment %s: %w", id, err)
	}

	payments := []payroll.Payment{p}
	if err := loadChildren(ctx, q, payments); err != nil {
		return payroll.Payment{}, err
	}
	return payments[0], nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, paymentID string, items []payroll.Item, deductions []payroll.Deduction) error {
	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO payroll_items (id, payment_id, type_code, description, amount, hours, hourly_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, it.ID, paymentID, it.TypeCode, it.Description, it.Amount, it.Hours, it.HourlyRate)
		if err != nil {
			return fmt.Errorf("failed to insert payment item: %w", err)
		}
	}
	for _, d := range deductions {
		_, err := tx.Exec(ctx, `
			INSERT INTO payroll_deductions (id, payment_id, kind, label, description, amount, rate, base_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, d.ID, paymentID, string(d.Kind), d.Label, d.Description, d.Amount, d.Rate, d.BaseAmount)
		if err != nil {
			return fmt.Errorf("failed to insert payment deduction: %w", err)
		}
	}
	return nil
}

// loadChildren fetches items and deductions for all payments in one query
// each and attaches them in place.
func loadChildren(ctx context.Context, q database.Querier, payments []payroll.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(payments))
	index := make(map[string]*payroll.Payment, len(payments))
	for i := range payments {
		ids = append(ids, payments[i].ID)
		index[payments[i].ID] = &payments[i]
	}

	itemRows, err := q.Query(ctx, `
		SELECT id, payment_id, type_code, description, amount, hours, hourly_rate
		FROM payroll_items
		WHERE payment_id = ANY($1)
		ORDER BY payment_id, type_code, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load payment items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it payroll.Item
		if err := itemRows.Scan(&it.ID, &it.PaymentID, &it.TypeCode, &it.Description, &it.Amount, &it.Hours, &it.HourlyRate); err != nil {
			return fmt.Errorf("failed to scan payment item: %w", err)
		}
		if p, ok := index[it.PaymentID]; ok {
			p.Items = append(p.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	deductionRows, err := q.Query(ctx, `
		SELECT id, payment_id, kind, label, description, amount, rate, base_amount
		FROM payroll_deductions
		WHERE payment_id = ANY($1)
		ORDER BY payment_id, kind, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load payment deductions: %w", err)
	}
	defer deductionRows.Close()
	for deductionRows.Next() {
		var d payroll.Deduction
		var kind string
		if err := deductionRows.Scan(&d.ID, &d.PaymentID, &kind, &d.Label, &d.Description, &d.Amount, &d.Rate, &d.BaseAmount); err != nil {
			return fmt.Errorf("failed to scan payment deduction: %w", err)
		}
		d.Kind = payroll.DeductionKind(kind)
		if p, ok := index[d.PaymentID]; ok {
			p.Deductions = append(p.Deductions, d)
		}
	}
	return deductionRows.Err()
}

func scanPayment(row pgx.Row) (payroll.Payment, error) {
	var p payroll.Payment
	err := row.Scan(
		&p.ID, &p.EmployeeID,
		&p.PeriodStart, &p.PeriodEnd, &p.PaymentDate, &p.PaymentMonth, &p.PaymentYear,
		&p.GrossSalary, &p.TotalDeductions, &p.NetSalary,
		&p.IsLocked, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}
