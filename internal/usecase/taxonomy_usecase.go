package usecase

import (
	"context"
	"net/http"

	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"
)

// 分類マスタ共通の薄いCRUD。エラー変換だけ担う。
type TaxonomyUsecase[T any] struct {
	repo repo.TaxonomyRepository[T]
}

// DI
func NewTaxonomyUsecase[T any](r repo.TaxonomyRepository[T]) *TaxonomyUsecase[T] {
	return &TaxonomyUsecase[T]{repo: r}
}

func (u *TaxonomyUsecase[T]) List(ctx context.Context) ([]T, error) {
	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *TaxonomyUsecase[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if id <= 0 {
		return zero, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	v, err := u.repo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return zero, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return v, nil
}

func (u *TaxonomyUsecase[T]) Create(ctx context.Context, v T) (T, error) {
	created, err := u.repo.Create(ctx, v)
	if err != nil {
		var zero T
		return zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *TaxonomyUsecase[T]) Update(ctx context.Context, id int64, values map[string]interface{}) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.repo.Update(ctx, id, values)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *TaxonomyUsecase[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.repo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
