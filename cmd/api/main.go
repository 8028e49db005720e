package main

import (
	"context"
	"log"

	gcs "cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/emilhuseynvh/ecommerse-emil/internal/config"
	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	"github.com/emilhuseynvh/ecommerse-emil/internal/handler"
	"github.com/emilhuseynvh/ecommerse-emil/internal/infra/db"
	"github.com/emilhuseynvh/ecommerse-emil/internal/infra/mail"
	infraRepo "github.com/emilhuseynvh/ecommerse-emil/internal/infra/repository"
	"github.com/emilhuseynvh/ecommerse-emil/internal/infra/storage"
	"github.com/emilhuseynvh/ecommerse-emil/internal/server"
	"github.com/emilhuseynvh/ecommerse-emil/internal/usecase"
	"github.com/emilhuseynvh/ecommerse-emil/internal/validator"
)

func main() {
	// .env はローカル用。無くても環境変数があれば動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Subcategory{},
		&model.Brand{},
		&model.Color{},
		&model.Size{},
		&model.Product{},
		&model.CartItem{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)

	categoryRepo := infraRepo.NewTaxonomyGormRepository[model.Category](gormDB)
	subcategoryRepo := infraRepo.NewTaxonomyGormRepository[model.Subcategory](gormDB)
	brandRepo := infraRepo.NewTaxonomyGormRepository[model.Brand](gormDB)
	colorRepo := infraRepo.NewTaxonomyGormRepository[model.Color](gormDB)
	sizeRepo := infraRepo.NewTaxonomyGormRepository[model.Size](gormDB)

	//メール（APIキー未設定ならスキップ）
	var mailer usecase.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFrom)
	}

	//画像ストレージ（バケット未設定ならスキップ）
	var imageStore usecase.ImageStore
	if cfg.GCSBucket != "" {
		client, err := gcs.NewClient(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		imageStore = storage.NewImageStoreGCS(client, cfg.GCSBucket)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo), mailer)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	uploadUC := usecase.NewUploadUsecase(imageStore)

	//Handler生成
	h := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Taxonomy: &handler.TaxonomyHandler{
			Categories:    usecase.NewTaxonomyUsecase[model.Category](categoryRepo),
			Subcategories: usecase.NewTaxonomyUsecase[model.Subcategory](subcategoryRepo),
			Brands:        usecase.NewTaxonomyUsecase[model.Brand](brandRepo),
			Colors:        usecase.NewTaxonomyUsecase[model.Color](colorRepo),
			Sizes:         usecase.NewTaxonomyUsecase[model.Size](sizeRepo),
		},
		Upload: handler.NewUploadHandler(uploadUC),
	}

	//Server起動
	if err := server.Start(cfg, h); err != nil {
		log.Fatal(err)
	}
}
