package itemtype

import "context"

type ItemTypeService interface {
	Create(ctx context.Context, req SaveItemTypeRequest) (ItemTypeResponse, error)
	GetByCode(ctx context.Context, code string) (ItemTypeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]ItemTypeResponse, error)
	Update(ctx context.Context, id string, req SaveItemTypeRequest) (ItemTypeResponse, error)
	Delete(ctx context.Context, id string) error
	// SeedDefaults installs the default Swiss wage-component catalog if the
	// registry is still empty.
	SeedDefaults(ctx context.Context) error
}
