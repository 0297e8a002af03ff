package itemtype

import "context"

type ItemTypeRepository interface {
	Create(ctx context.Context, t ItemType) (ItemType, error)
	GetByCode(ctx context.Context, code string) (ItemType, error)
	List(ctx context.Context, activeOnly bool) ([]ItemType, error)
	Update(ctx context.Context, id string, t ItemType) (ItemType, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
