package server

import (
	"github.com/emilhuseynvh/ecommerse-emil/internal/config"
	"github.com/emilhuseynvh/ecommerse-emil/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なhandler一式。
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Taxonomy *handler.TaxonomyHandler
	Upload   *handler.UploadHandler
}

// New はechoを組み立てる（起動はしない。テストからも使う）。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Taxonomy.RegisterRoutes(e)
	h.Upload.RegisterRoutes(e, cfg)

	return e
}

// Start はサーバを起動する。
func Start(cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(":" + cfg.Port)
}
