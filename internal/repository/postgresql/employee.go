package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, first_name, last_name, birth_date, ahv_number, gender,
	entry_date, exit_date,
	has_ahv, has_alv, has_accident_insurance, is_nbu_insured, is_rentner,
	is_qst_subject, qst_rate,
	bank_name, bank_iban,
	monthly_salary, hourly_rate, employment_level,
	bvg_deduction_amount, bvg_deduction_percentage,
	is_active, created_at, updated_at
`

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	query := `
		INSERT INTO employees (
			id, first_name, last_name, birth_date, ahv_number, gender,
			entry_date, exit_date,
			has_ahv, has_alv, has_accident_insurance, is_nbu_insured, is_rentner,
			is_qst_subject, qst_rate,
			bank_name, bank_iban,
			monthly_salary, hourly_rate, employment_level,
			bvg_deduction_amount, bvg_deduction_percentage,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(r.db.Pool.QueryRow(ctx, query, employeeArgs(e)...))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	found, err := scanEmployee(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY last_name, first_name, id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, e employee.Employee) (employee.Employee, error) {
	query := `
		UPDATE employees SET
			first_name = $2, last_name = $3, birth_date = $4, ahv_number = $5, gender = $6,
			entry_date = $7, exit_date = $8,
			has_ahv = $9, has_alv = $10, has_accident_insurance = $11,
			is_nbu_insured = $12, is_rentner = $13,
			is_qst_subject = $14, qst_rate = $15,
			bank_name = $16, bank_iban = $17,
			monthly_salary = $18, hourly_rate = $19, employment_level = $20,
			bvg_deduction_amount = $21, bvg_deduction_percentage = $22,
			is_active = $23,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	args := employeeArgs(e)
	args[0] = id
	updated, err := scanEmployee(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository. Employees with payroll
// history cannot be removed.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	var hasPayments bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_payments WHERE employee_id = $1)`, id,
	).Scan(&hasPayments)
	if err != nil {
		return fmt.Errorf("failed to check payroll history for employee %s: %w", id, err)
	}
	if hasPayments {
		return employee.ErrEmployeeHasPayments
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func employeeArgs(e employee.Employee) []interface{} {
	return []interface{}{
		e.ID, e.FirstName, e.LastName, e.BirthDate, e.AhvNumber, string(e.Gender),
		e.EntryDate, e.ExitDate,
		e.HasAhv, e.HasAlv, e.HasAccidentInsurance, e.IsNbuInsured, e.IsRentner,
		e.IsQstSubject, e.QstRate,
		e.BankName, e.BankIban,
		e.MonthlySalary, e.HourlyRate, e.EmploymentLevel,
		e.BvgDeductionAmount, e.BvgDeductionPercentage,
		e.IsActive,
	}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var gender string
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.BirthDate, &e.AhvNumber, &gender,
		&e.EntryDate, &e.ExitDate,
		&e.HasAhv, &e.HasAlv, &e.HasAccidentInsurance, &e.IsNbuInsured, &e.IsRentner,
		&e.IsQstSubject, &e.QstRate,
		&e.BankName, &e.BankIban,
		&e.MonthlySalary, &e.HourlyRate, &e.EmploymentLevel,
		&e.BvgDeductionAmount, &e.BvgDeductionPercentage,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	e.Gender = employee.Gender(gender)
	return e, err
}
