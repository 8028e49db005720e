package repository

import (
	"context"
	"errors"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 指定条件のページ分と総件数を返す。
// count と find は同じ条件で組み立てる（メタ情報の整合のため）。
// 2クエリ間のトランザクション整合は取らない（一覧用途のベストエフォート）。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.SubcategoryID != nil {
		tx = tx.Where("subcategory_id = ?", *q.SubcategoryID)
	}
	if q.BrandID != nil {
		tx = tx.Where("brand_id = ?", *q.BrandID)
	}

	// 色・サイズは名前で指定されるのでマスタ経由で引く
	if len(q.Colors) > 0 {
		sub := r.db.Model(&model.Color{}).Select("id").Where("upper(name) IN ?", q.Colors)
		tx = tx.Where("color_id IN (?)", sub)
	}
	if len(q.Sizes) > 0 {
		sub := r.db.Model(&model.Size{}).Select("id").Where("upper(name) IN ?", q.Sizes)
		tx = tx.Where("size_id IN (?)", sub)
	}

	// 価格帯（片側だけでも可）
	if q.PriceMin != nil {
		tx = tx.Where("price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		tx = tx.Where("price <= ?", *q.PriceMax)
	}

	if q.Discount != nil {
		if *q.Discount {
			tx = tx.Where("discount > 0")
		} else {
			tx = tx.Where("discount = 0")
		}
	}

	// total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	// sort（同値用にidで安定化）
	dir := "asc"
	if q.SortOrder == repo.SortDesc {
		dir = "desc"
	}
	switch q.SortBy {
	case "name":
		tx = tx.Order("name " + dir)
	case "created_at":
		tx = tx.Order("created_at " + dir)
	case "discount":
		tx = tx.Order("discount " + dir)
	default:
		tx = tx.Order("price " + dir)
	}
	tx = tx.Order("id " + dir)

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"discount":       p.Discount,
		"images":         p.Images,
		"category_id":    p.CategoryID,
		"subcategory_id": p.SubcategoryID,
		"brand_id":       p.BrandID,
		"color_id":       p.ColorID,
		"size_id":        p.SizeID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
