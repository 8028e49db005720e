package repository

import (
	"context"
	"errors"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ソート方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// 一覧検索の条件。
// ポインタ/スライスの nil は「条件なし」（その句を組み立てない）。
type ProductListQuery struct {
	CategoryID    *int64
	SubcategoryID *int64
	BrandID       *int64
	Colors        []string // 大文字化済みの色名（いずれか一致）
	Sizes         []string // 大文字化済みのサイズ名（いずれか一致）
	PriceMin      *float64
	PriceMax      *float64
	Discount      *bool // true: discount > 0 / false: discount = 0

	SortBy    string // price / name / created_at / discount
	SortOrder string // asc / desc

	Page  int
	Limit int
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 条件一致のページ分と、ページを無視した総件数を同じ条件で返す。
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
