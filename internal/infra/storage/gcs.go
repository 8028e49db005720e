package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// ImageStoreGCS は商品画像のGCSアダプタ。
//
// バケットに allUsers: Storage Object Viewer が付いていれば、
// アップロードしたオブジェクトはそのまま公開URLで読める。
type ImageStoreGCS struct {
	Client *storage.Client
	Bucket string
	// 空なら https://storage.googleapis.com を使う
	PublicBaseURL string
}

func NewImageStoreGCS(client *storage.Client, bucket string) *ImageStoreGCS {
	return &ImageStoreGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

func (s *ImageStoreGCS) bucket() (*storage.BucketHandle, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("storage: client is nil")
	}
	if s.Bucket == "" {
		return nil, errors.New("storage: bucket is empty")
	}
	return s.Client.Bucket(s.Bucket), nil
}

// Put はオブジェクトを書き込み、公開URLを返す。
func (s *ImageStoreGCS) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	bh, err := s.bucket()
	if err != nil {
		return "", err
	}
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("storage: key is empty")
	}

	w := bh.Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.PublicBaseURL, "/"), s.Bucket, key), nil
}

// Delete はオブジェクトを削除する。存在しない場合はそのまま成功扱い。
func (s *ImageStoreGCS) Delete(ctx context.Context, key string) error {
	bh, err := s.bucket()
	if err != nil {
		return err
	}
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return errors.New("storage: key is empty")
	}

	err = bh.Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
