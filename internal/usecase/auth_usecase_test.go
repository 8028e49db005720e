package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/emilhuseynvh/ecommerse-emil/internal/config"
	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	"github.com/emilhuseynvh/ecommerse-emil/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	user.ID = 1
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type validatorStub struct{ err error }

func (v validatorStub) ValidateRegister(ctx context.Context, name, email, password string) error {
	return v.err
}

func (v validatorStub) ValidateLogin(ctx context.Context, email, password string) error {
	return v.err
}

// 送信をチャネルで記録する（非同期送信の確認用）
type mailerSpy struct {
	sent chan string
}

func (m *mailerSpy) Send(ctx context.Context, to, subject, body string) error {
	m.sent <- to
	return nil
}

var testCfg = config.Config{JWTSecret: "test_secret"}

func TestAuthUsecase_Register_Success(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	spy := &mailerSpy{sent: make(chan string, 1)}
	uc := NewAuthUsecase(testCfg, users, validatorStub{}, spy)

	out, err := uc.Register(context.Background(), AuthRegisterRequest{
		Name:     "Emil",
		Email:    "emil@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "emil@example.com", out.User.Email)
	assert.Equal(t, int64(1), out.User.ID)

	//ウェルカムメールは非同期
	select {
	case to := <-spy.sent:
		assert.Equal(t, "emil@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("welcome mail not sent")
	}
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	users := new(AuthUserRepoMock)
	uc := NewAuthUsecase(testCfg, users, validatorStub{err: assert.AnError}, nil)

	_, err := uc.Register(context.Background(), AuthRegisterRequest{})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// validatorが500を返した場合（重複チェックのDB障害）は400に潰さない
func TestAuthUsecase_Register_ValidatorDBError(t *testing.T) {
	users := new(AuthUserRepoMock)
	vErr := NewHTTPError(http.StatusInternalServerError, "db error")
	uc := NewAuthUsecase(testCfg, users, validatorStub{err: vErr}, nil)

	_, err := uc.Register(context.Background(), AuthRegisterRequest{})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// チェックとINSERTの間に同じemailが滑り込んだ場合は400
func TestAuthUsecase_Register_DuplicateEmailRace(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	uc := NewAuthUsecase(testCfg, users, validatorStub{}, nil)

	_, err := uc.Register(context.Background(), AuthRegisterRequest{
		Name:     "Emil",
		Email:    "emil@example.com",
		Password: "password123",
	})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, "emil@example.com").Return(&model.User{
		ID:           42,
		Email:        "emil@example.com",
		PasswordHash: string(hash),
	}, nil)

	uc := NewAuthUsecase(testCfg, users, validatorStub{}, nil)

	out, err := uc.Login(context.Background(), AuthLoginRequest{
		Email:    "emil@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	//発行したトークンが自分のシークレットで検証でき、subが入っている
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testCfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, "emil@example.com").Return(&model.User{
		ID:           42,
		Email:        "emil@example.com",
		PasswordHash: string(hash),
	}, nil)

	uc := NewAuthUsecase(testCfg, users, validatorStub{}, nil)

	_, err := uc.Login(context.Background(), AuthLoginRequest{
		Email:    "emil@example.com",
		Password: "wrong",
	})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := new(AuthUserRepoMock)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return((*model.User)(nil), nil)

	uc := NewAuthUsecase(testCfg, users, validatorStub{}, nil)

	_, err := uc.Login(context.Background(), AuthLoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}
