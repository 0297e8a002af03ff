package company

import "context"

type CompanyService interface {
	Get(ctx context.Context) (CompanyResponse, error)
	Save(ctx context.Context, req SaveCompanyRequest) (CompanyResponse, error)
}
