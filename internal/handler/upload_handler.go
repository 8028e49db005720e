package handler

import (
	"net/http"

	"github.com/emilhuseynvh/ecommerse-emil/internal/config"
	"github.com/emilhuseynvh/ecommerse-emil/internal/middleware"
	"github.com/emilhuseynvh/ecommerse-emil/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /uploadのHTTP（商品画像）
type UploadHandler struct {
	uc *usecase.UploadUsecase
}

// DI
func NewUploadHandler(uc *usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/upload")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.upload)
	// keyは "images/..." のようにスラッシュを含むのでクエリで受ける
	g.DELETE("", h.remove)
}

func (h *UploadHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}
	defer f.Close()

	out, err := h.uc.Upload(c.Request().Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UploadHandler) remove(c echo.Context) error {
	key := c.QueryParam("key")

	if err := h.uc.Delete(c.Request().Context(), key); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
