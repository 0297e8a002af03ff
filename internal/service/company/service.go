package company

import (
	"context"
	"log/slog"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/company"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
)

type CompanyServiceImpl struct {
	repo            company.CompanyRepository
	itemTypeService itemtype.ItemTypeService
	logger          *slog.Logger
}

func NewCompanyService(repo company.CompanyRepository, itemTypeService itemtype.ItemTypeService, logger *slog.Logger) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		repo:            repo,
		itemTypeService: itemTypeService,
		logger:          logger,
	}
}

func (s *CompanyServiceImpl) Get(ctx context.Context) (company.CompanyResponse, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(c), nil
}

// Save upserts the single company row. The first save also seeds the default
// wage-component catalog so a fresh installation can record payments right
// away.
func (s *CompanyServiceImpl) Save(ctx context.Context, req company.SaveCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	entity, err := req.ToEntity()
	if err != nil {
		return company.CompanyResponse{}, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.itemTypeService.SeedDefaults(ctx); err != nil {
		// The company row itself is saved; seeding can be retried on the
		// next save.
		s.logger.Error("failed to seed default item types", slog.String("error", err.Error()))
	}

	return company.NewCompanyResponse(saved), nil
}
