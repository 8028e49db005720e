package usecase

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// オブジェクトストレージの約束（GCS実装をDI）
type ImageStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type UploadUsecase struct {
	store ImageStore
}

// DI
func NewUploadUsecase(store ImageStore) *UploadUsecase {
	return &UploadUsecase{store: store}
}

type UploadOutput struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload は画像を保存して公開URLを返す。
// キーは images/<uuid><ext> で衝突させない。
func (u *UploadUsecase) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (UploadOutput, error) {
	if u.store == nil {
		return UploadOutput{}, NewHTTPError(http.StatusInternalServerError, "storage not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return UploadOutput{}, NewHTTPError(http.StatusBadRequest, "image required")
	}

	key := "images/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	url, err := u.store.Put(ctx, key, contentType, body)
	if err != nil {
		return UploadOutput{}, NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	return UploadOutput{Key: key, URL: url}, nil
}

func (u *UploadUsecase) Delete(ctx context.Context, key string) error {
	if u.store == nil {
		return NewHTTPError(http.StatusInternalServerError, "storage not configured")
	}
	if strings.TrimSpace(key) == "" {
		return NewHTTPError(http.StatusBadRequest, "key required")
	}

	if err := u.store.Delete(ctx, key); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	return nil
}
