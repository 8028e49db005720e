package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/emilhuseynvh/ecommerse-emil/internal/domain/model"
	"github.com/emilhuseynvh/ecommerse-emil/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 分類マスタ（/categories /subcategories /brands /colors /sizes）のHTTP。
// 中身は全部同じ形のCRUDなので、decode関数だけ入れ替えて共通化する。
type TaxonomyHandler struct {
	Categories    *usecase.TaxonomyUsecase[model.Category]
	Subcategories *usecase.TaxonomyUsecase[model.Subcategory]
	Brands        *usecase.TaxonomyUsecase[model.Brand]
	Colors        *usecase.TaxonomyUsecase[model.Color]
	Sizes         *usecase.TaxonomyUsecase[model.Size]
}

type nameRequest struct {
	Name string `json:"name"`
}

type subcategoryRequest struct {
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

func (h *TaxonomyHandler) RegisterRoutes(e *echo.Echo) {
	registerTaxonomyRoutes(e.Group("/categories"), h.Categories, decodeCategory)
	registerTaxonomyRoutes(e.Group("/subcategories"), h.Subcategories, decodeSubcategory)
	registerTaxonomyRoutes(e.Group("/brands"), h.Brands, decodeBrand)
	registerTaxonomyRoutes(e.Group("/colors"), h.Colors, decodeColor)
	registerTaxonomyRoutes(e.Group("/sizes"), h.Sizes, decodeSize)
}

func decodeCategory(c echo.Context) (model.Category, map[string]interface{}, error) {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return model.Category{}, nil, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return model.Category{}, nil, err
	}
	return model.Category{Name: name}, map[string]interface{}{"name": name}, nil
}

func decodeSubcategory(c echo.Context) (model.Subcategory, map[string]interface{}, error) {
	var req subcategoryRequest
	if err := c.Bind(&req); err != nil {
		return model.Subcategory{}, nil, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return model.Subcategory{}, nil, err
	}
	if req.CategoryID <= 0 {
		return model.Subcategory{}, nil, usecase.NewHTTPError(http.StatusBadRequest, "category_id required")
	}
	return model.Subcategory{Name: name, CategoryID: req.CategoryID},
		map[string]interface{}{"name": name, "category_id": req.CategoryID}, nil
}

func decodeBrand(c echo.Context) (model.Brand, map[string]interface{}, error) {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return model.Brand{}, nil, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return model.Brand{}, nil, err
	}
	return model.Brand{Name: name}, map[string]interface{}{"name": name}, nil
}

// 色名は大文字で保存する（検索側も大文字比較）
func decodeColor(c echo.Context) (model.Color, map[string]interface{}, error) {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return model.Color{}, nil, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return model.Color{}, nil, err
	}
	name = strings.ToUpper(name)
	return model.Color{Name: name}, map[string]interface{}{"name": name}, nil
}

// サイズ名も大文字で保存する
func decodeSize(c echo.Context) (model.Size, map[string]interface{}, error) {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return model.Size{}, nil, err
	}
	name, err := requireName(req.Name)
	if err != nil {
		return model.Size{}, nil, err
	}
	name = strings.ToUpper(name)
	return model.Size{Name: name}, map[string]interface{}{"name": name}, nil
}

func requireName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "name required")
	}
	return s, nil
}

func registerTaxonomyRoutes[T any](
	g *echo.Group,
	uc *usecase.TaxonomyUsecase[T],
	decode func(c echo.Context) (T, map[string]interface{}, error),
) {
	g.GET("", func(c echo.Context) error {
		items, err := uc.List(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}
		v, err := uc.Get(c.Request().Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, v)
	})

	g.POST("", func(c echo.Context) error {
		v, _, err := decode(c)
		if err != nil {
			return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, bindErrMessage(err)))
		}
		created, err := uc.Create(c.Request().Context(), v)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	})

	g.PATCH("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}
		_, values, err := decode(c)
		if err != nil {
			return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, bindErrMessage(err)))
		}
		if err := uc.Update(c.Request().Context(), id, values); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}
		if err := uc.Delete(c.Request().Context(), id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}

func bindErrMessage(err error) string {
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Message
	}
	return "invalid body"
}
