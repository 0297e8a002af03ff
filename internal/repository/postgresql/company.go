package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, name, address,
	ahv_employee_rate, ahv_employer_rate, ahv_rentner_allowance,
	alv_employee_rate, alv_employer_rate, alv_max_income_per_year,
	alv2_employee_rate, alv2_employer_rate,
	nbu_male_rate, nbu_female_rate, nbu_max_income_per_year,
	ktg_gav_rate, berufsbeitrag_gav_rate,
	created_at, updated_at
`

// Get implements company.CompanyRepository.
func (c *companyRepositoryImpl) Get(ctx context.Context) (company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM company LIMIT 1`

	found, err := scanCompany(c.db.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return found, nil
}

// Save implements company.CompanyRepository. The table holds at most one row;
// the first save inserts it, subsequent saves fully replace it.
func (c *companyRepositoryImpl) Save(ctx context.Context, entity company.Company) (company.Company, error) {
	var saved company.Company
	err := WithTransaction(ctx, c.db, func(tx pgx.Tx) error {
		var existingID string
		err := tx.QueryRow(ctx, `SELECT id FROM company LIMIT 1 FOR UPDATE`).Scan(&existingID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			insert := `
				INSERT INTO company (
					id, name, address,
					ahv_employee_rate, ahv_employer_rate, ahv_rentner_allowance,
					alv_employee_rate, alv_employer_rate, alv_max_income_per_year,
					alv2_employee_rate, alv2_employer_rate,
					nbu_male_rate, nbu_female_rate, nbu_max_income_per_year,
					ktg_gav_rate, berufsbeitrag_gav_rate
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				RETURNING ` + companyColumns
			args := companyArgs(entity)
			args[0] = uuid.Must(uuid.NewV7()).String()
			saved, err = scanCompany(tx.QueryRow(ctx, insert, args...))
			return err
		case err != nil:
			return err
		}

		update := `
			UPDATE company SET
				name = $2, address = $3,
				ahv_employee_rate = $4, ahv_employer_rate = $5, ahv_rentner_allowance = $6,
				alv_employee_rate = $7, alv_employer_rate = $8, alv_max_income_per_year = $9,
				alv2_employee_rate = $10, alv2_employer_rate = $11,
				nbu_male_rate = $12, nbu_female_rate = $13, nbu_max_income_per_year = $14,
				ktg_gav_rate = $15, berufsbeitrag_gav_rate = $16,
				updated_at = NOW()
			WHERE id = $1
			RETURNING ` + companyColumns
		args := companyArgs(entity)
		args[0] = existingID
		saved, err = scanCompany(tx.QueryRow(ctx, update, args...))
		return err
	})
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to save company: %w", err)
	}
	return saved, nil
}

func companyArgs(c company.Company) []interface{} {
	return []interface{}{
		c.ID, c.Name, c.Address,
		c.AhvEmployeeRate, c.AhvEmployerRate, c.AhvRentnerAllowance,
		c.AlvEmployeeRate, c.AlvEmployerRate, c.AlvMaxIncomePerYear,
		c.Alv2EmployeeRate, c.Alv2EmployerRate,
		c.NbuMaleRate, c.NbuFemaleRate, c.NbuMaxIncomePerYear,
		c.KtgGavRate, c.BerufsbeitragGavRate,
	}
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Address,
		&c.AhvEmployeeRate, &c.AhvEmployerRate, &c.AhvRentnerAllowance,
		&c.AlvEmployeeRate, &c.AlvEmployerRate, &c.AlvMaxIncomePerYear,
		&c.Alv2EmployeeRate, &c.Alv2EmployerRate,
		&c.NbuMaleRate, &c.NbuFemaleRate, &c.NbuMaxIncomePerYear,
		&c.KtgGavRate, &c.BerufsbeitragGavRate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
