package company

import "context"

type CompanyRepository interface {
	// Get returns the single company row or ErrCompanyNotFound.
	Get(ctx context.Context) (Company, error)
	// Save inserts the row on first save and fully replaces it afterwards.
	Save(ctx context.Context, c Company) (Company, error)
}
