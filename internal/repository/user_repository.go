package repository

import (
	"context"
	"errors"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
)

// 一意制約違反（email重複）
var ErrDuplicate = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// 見つからない場合は (nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}
