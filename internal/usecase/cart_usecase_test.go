package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID, addQty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartRepoMock) DeleteByUserAndProduct(ctx context.Context, userID int64, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartRepoMock) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// (user, product) で数量が積み上がるインメモリ実装。
// 加算セマンティクスの確認用。
type fakeCartRepo struct {
	lines  map[[2]int64]*model.CartItem
	nextID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: map[[2]int64]*model.CartItem{}, nextID: 1}
}

func (f *fakeCartRepo) Upsert(ctx context.Context, userID, productID, addQty int64) (model.CartItem, error) {
	key := [2]int64{userID, productID}
	if line, ok := f.lines[key]; ok {
		line.Quantity += addQty
		return *line, nil
	}
	line := &model.CartItem{ID: f.nextID, UserID: userID, ProductID: productID, Quantity: addQty}
	f.nextID++
	f.lines[key] = line
	return *line, nil
}

func (f *fakeCartRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error {
	key := [2]int64{userID, productID}
	if _, ok := f.lines[key]; !ok {
		return repo.ErrNotFound
	}
	delete(f.lines, key)
	return nil
}

func (f *fakeCartRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	items, _ := f.ListByUserID(ctx, userID)
	return int64(len(items)), nil
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_AccumulatesSingleLine(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, Name: "A"}, nil)

	cRepo := newFakeCartRepo()
	uc := NewCartUsecase(cRepo, pRepo)

	out, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Count: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Item.Quantity)

	out, err = uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Count: 3})
	assert.NoError(t, err)

	//2行にならず数量5の1行
	assert.Equal(t, int64(5), out.Item.Quantity)
	count, _ := cRepo.CountByUserID(ctx, 1)
	assert.Equal(t, int64(1), count)
}

func TestCartUsecase_AddToCart_DefaultCountIsOne(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil)

	cRepo := newFakeCartRepo()
	uc := NewCartUsecase(cRepo, pRepo)

	//count省略で2回 → 数量2の1行
	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7})
	assert.NoError(t, err)
	out, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7})
	assert.NoError(t, err)

	assert.Equal(t, int64(2), out.Item.Quantity)
	count, _ := cRepo.CountByUserID(ctx, 1)
	assert.Equal(t, int64(1), count)
}

// 存在しない商品は404で、カートには書き込まない
func TestCartUsecase_AddToCart_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(cRepo, pRepo)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 99})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_Unauthorized(t *testing.T) {
	cRepo := new(CartRepoMock)
	uc := NewCartUsecase(cRepo, new(CartProductRepoMock))

	_, err := uc.AddToCart(context.Background(), 0, AddCartInput{ProductID: 7})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	cRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InvalidInput(t *testing.T) {
	uc := NewCartUsecase(new(CartRepoMock), new(CartProductRepoMock))

	_, err := uc.AddToCart(context.Background(), 1, AddCartInput{ProductID: 0})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.AddToCart(context.Background(), 1, AddCartInput{ProductID: 7, Count: -1})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_AddToCart_DBError(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil)

	cRepo := new(CartRepoMock)
	cRepo.On("Upsert", mock.Anything, int64(1), int64(7), int64(1)).
		Return(model.CartItem{}, errors.New("boom"))

	uc := NewCartUsecase(cRepo, pRepo)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}

// =====================
// DeleteCart / GetCart
// =====================

func TestCartUsecase_DeleteCart_NotFound(t *testing.T) {
	cRepo := new(CartRepoMock)
	cRepo.On("DeleteByUserAndProduct", mock.Anything, int64(1), int64(9)).Return(repo.ErrNotFound)

	uc := NewCartUsecase(cRepo, new(CartProductRepoMock))

	err := uc.DeleteCart(context.Background(), 1, 9)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestCartUsecase_DeleteCart_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil)

	cRepo := newFakeCartRepo()
	uc := NewCartUsecase(cRepo, pRepo)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7})
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteCart(ctx, 1, 7))

	count, _ := cRepo.CountByUserID(ctx, 1)
	assert.Equal(t, int64(0), count)
}

func TestCartUsecase_GetCart_TotalsFromProducts(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, Name: "A", Price: 10.5}, nil)
	pRepo.On("FindByID", mock.Anything, int64(8)).Return(model.Product{ID: 8, Name: "B", Price: 2}, nil)

	cRepo := new(CartRepoMock)
	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 1, UserID: 1, ProductID: 7, Quantity: 2},
		{ID: 2, UserID: 1, ProductID: 8, Quantity: 1},
	}, nil)

	uc := NewCartUsecase(cRepo, pRepo)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 23.0, out.Total)
}

// 商品取得のDB障害は欠品扱いにせず500で返す
func TestCartUsecase_GetCart_ProductLookupError(t *testing.T) {
	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{}, errors.New("connection refused"))

	cRepo := new(CartRepoMock)
	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 1, UserID: 1, ProductID: 7, Quantity: 2},
	}, nil)

	uc := NewCartUsecase(cRepo, pRepo)

	_, err := uc.GetCart(context.Background(), 1)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}

// 商品が消えた明細はスキップし、残りは返す
func TestCartUsecase_GetCart_MissingProductSkipped(t *testing.T) {
	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("FindByID", mock.Anything, int64(8)).Return(model.Product{ID: 8, Name: "B", Price: 2}, nil)

	cRepo := new(CartRepoMock)
	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 1, UserID: 1, ProductID: 7, Quantity: 2},
		{ID: 2, UserID: 1, ProductID: 8, Quantity: 3},
	}, nil)

	uc := NewCartUsecase(cRepo, pRepo)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 6.0, out.Total)
}
