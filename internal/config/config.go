package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	SendGridAPIKey string // メール送信（空なら送信スキップ）
	MailFrom       string // 差出人アドレス

	GCSBucket string // 商品画像バケット（空ならアップロード無効）

	GoEnv string // dev/prod
}

// Loadは環境変数から読み込む。
// DB接続は infra/db 側が DATABASE_URL / POSTGRES_* を直接見る。
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenv("MAIL_FROM", "no-reply@localhost"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
