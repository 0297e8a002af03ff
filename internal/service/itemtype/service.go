package itemtype

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/fixtures"
	"github.com/google/uuid"
)

type ItemTypeServiceImpl struct {
	repo   itemtype.ItemTypeRepository
	logger *slog.Logger
}

func NewItemTypeService(repo itemtype.ItemTypeRepository, logger *slog.Logger) *ItemTypeServiceImpl {
	return &ItemTypeServiceImpl{repo: repo, logger: logger}
}

func (s *ItemTypeServiceImpl) Create(ctx context.Context, req itemtype.SaveItemTypeRequest) (itemtype.ItemTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return itemtype.ItemTypeResponse{}, err
	}

	entity := req.ToEntity()
	entity.ID = uuid.Must(uuid.NewV7()).String()

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return itemtype.ItemTypeResponse{}, err
	}
	return itemtype.NewItemTypeResponse(created), nil
}

func (s *ItemTypeServiceImpl) GetByCode(ctx context.Context, code string) (itemtype.ItemTypeResponse, error) {
	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return itemtype.ItemTypeResponse{}, err
	}
	return itemtype.NewItemTypeResponse(t), nil
}

func (s *ItemTypeServiceImpl) List(ctx context.Context, activeOnly bool) ([]itemtype.ItemTypeResponse, error) {
	types, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]itemtype.ItemTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, itemtype.NewItemTypeResponse(t))
	}
	return responses, nil
}

func (s *ItemTypeServiceImpl) Update(ctx context.Context, id string, req itemtype.SaveItemTypeRequest) (itemtype.ItemTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return itemtype.ItemTypeResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, req.ToEntity())
	if err != nil {
		return itemtype.ItemTypeResponse{}, err
	}
	return itemtype.NewItemTypeResponse(updated), nil
}

func (s *ItemTypeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SeedDefaults installs the default wage-component catalog. It is a no-op
// when the registry already has entries, so re-running it is safe.
func (s *ItemTypeServiceImpl) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count item types: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := fixtures.DefaultItemTypes()
	for _, t := range defaults {
		t.ID = uuid.Must(uuid.NewV7()).String()
		if _, err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("failed to seed item type %s: %w", t.Code, err)
		}
	}

	s.logger.Info("seeded default item types", slog.Int("count", len(defaults)))
	return nil
}
