package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/emilhuseynvh/ecommerse-emil/internal/config"
	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	"github.com/emilhuseynvh/ecommerse-emil/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// 登録完了メールを送る約束（SendGrid実装をDI）
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRegisterResponse struct {
	User UserDTO `json:"user"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
	mailer    Mailer
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
	mailer Mailer,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		mailer:    mailer,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	//入力検証（validatorに寄せる）。重複チェックのDB障害は500のまま通す
	if err := u.validator.ValidateRegister(ctx, req.Name, req.Email, req.Password); err != nil {
		if he, ok := AsHTTPError(err); ok {
			return nil, he
		}
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//ユーザー作成
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(pwHash),
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 重複チェック後に滑り込まれた場合。validator経路と同じ400に揃える
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewHTTPError(http.StatusBadRequest, "email already used")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//登録完了メール（ベストエフォート。失敗しても登録は成立）
	if u.mailer != nil {
		go func(to string, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := u.mailer.Send(ctx, to, "Welcome", "Hi "+name+", welcome to the shop!"); err != nil {
				log.Printf("[mail] welcome mail failed: %v", err)
			}
		}(user.Email, user.Name)
	}

	return &AuthRegisterResponse{
		User: UserDTO{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//パスワード照合
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//AccessToken発行
	token, err := u.issueAccessToken(user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthLoginResponse{
		User:        UserDTO{ID: user.ID, Name: user.Name, Email: user.Email},
		AccessToken: token,
		ExpiresIn:   int(accessTokenTTL.Seconds()),
	}, nil
}

func (u *AuthUsecase) issueAccessToken(userID int64) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", errors.New("sign failed")
	}
	return signed, nil
}
