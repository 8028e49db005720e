package repository

import (
	"context"
	"errors"

	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"

	"gorm.io/gorm"
)

// 分類マスタ共通のgorm実装。
type TaxonomyGormRepository[T any] struct {
	db *gorm.DB
}

// DI
func NewTaxonomyGormRepository[T any](db *gorm.DB) *TaxonomyGormRepository[T] {
	return &TaxonomyGormRepository[T]{db: db}
}

func (r *TaxonomyGormRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TaxonomyGormRepository[T]) FindByID(ctx context.Context, id int64) (T, error) {
	var v T
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero T
		return zero, repo.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (r *TaxonomyGormRepository[T]) Create(ctx context.Context, v T) (T, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (r *TaxonomyGormRepository[T]) Update(ctx context.Context, id int64, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TaxonomyGormRepository[T]) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
