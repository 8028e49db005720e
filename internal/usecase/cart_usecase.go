package usecase

import (
	"context"
	"net/http"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// 明細は (user, product) につき1行で、同一商品の追加は数量加算。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddCartInput struct {
	ProductID int64
	Count     int64 // 省略時は1
}

type AddCartOutput struct {
	Message string         `json:"message"`
	Product model.Product  `json:"product"`
	Item    model.CartItem `json:"item"`
}

type CartLineResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

// AddToCart はカートに追加する。
// 商品の存在チェック→upsert の順で、チェックに落ちたら書き込みはしない。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (AddCartOutput, error) {
	if userID <= 0 {
		return AddCartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	count := in.Count
	if count == 0 {
		count = 1
	}
	if count < 1 {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid count")
	}

	// 商品チェック
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return AddCartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return AddCartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 同一 (user, product) は数量加算
	item, err := u.cartRepo.Upsert(ctx, userID, in.ProductID, count)
	if err != nil {
		return AddCartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AddCartOutput{
		Message: "added to cart",
		Product: p,
		Item:    item,
	}, nil
}

// DeleteCart は (user, product) の明細を削除する。
func (u *CartUsecase) DeleteCart(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	err := u.cartRepo.DeleteByUserAndProduct(ctx, userID, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// GetCart は明細を商品情報付きで返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartLineResponse, 0, len(items))
	var total float64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			// 商品が消えた明細は表示しない
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		respItems = append(respItems, CartLineResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})

		total += p.Price * float64(it.Quantity)
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
