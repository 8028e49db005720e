package repository

import "context"

// 分類マスタ（category / subcategory / brand / color / size）の
// 単純CRUD。エンティティごとに同じ形なので型パラメータでまとめる。
type TaxonomyRepository[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id int64, values map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}
