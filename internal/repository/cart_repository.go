package repository

import (
	"context"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
)

type CartRepository interface {
	// 同一 (user, product) は数量加算。1文のupsertで行う。
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	DeleteByUserAndProduct(ctx context.Context, userID int64, productID int64) error
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}
