package usecase

import (
	"strconv"
	"strings"

	repo "github.com/emilhuseynvh/ecommerse-emil/internal/repository"
)

// ページングのデフォルト値
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductListParams は一覧APIのクエリ文字列の生値。
// handlerは解釈せずそのまま渡す。
type ProductListParams struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string

	CategoryID    string
	SubcategoryID string
	BrandID       string
	Color         string // カンマ区切り
	Size          string // カンマ区切り
	MinPrice      string
	MaxPrice      string
	Discount      string // "true" / "false" / それ以外は無視
}

// BuildProductListQuery は生のパラメータを正規化された検索条件にする。
//
// 方針は「解釈できない任意フィルタは落とす」。数値として読めない
// categoryId 等はその句だけ省略し、リクエスト全体は失敗させない。
// page/limit も非数値・0以下はデフォルトに丸める（400にしない）。
// エラーは返さない。
func BuildProductListQuery(in ProductListParams) repo.ProductListQuery {
	q := repo.ProductListQuery{
		CategoryID:    parseID(in.CategoryID),
		SubcategoryID: parseID(in.SubcategoryID),
		BrandID:       parseID(in.BrandID),
		Colors:        splitUpper(in.Color),
		Sizes:         splitUpper(in.Size),
		PriceMin:      parsePrice(in.MinPrice),
		PriceMax:      parsePrice(in.MaxPrice),
		Discount:      parseDiscount(in.Discount),

		SortBy:    normalizeSortBy(in.SortBy),
		SortOrder: normalizeSortOrder(in.SortOrder),

		Page:  parsePositive(in.Page, DefaultPage),
		Limit: parsePositive(in.Limit, DefaultLimit),
	}

	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	return q
}

func parseID(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// カンマ区切りを trim + 大文字化。空要素は除く。
func splitUpper(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// "true": discount > 0 / "false": discount = 0 / それ以外: 条件なし
func parseDiscount(s string) *bool {
	switch strings.TrimSpace(s) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func normalizeSortBy(s string) string {
	switch strings.TrimSpace(s) {
	case "name", "created_at", "discount":
		return strings.TrimSpace(s)
	default:
		return "price"
	}
}

// "asc" 以外はすべて降順に寄せる（2値への丸め、エラーにしない）
func normalizeSortOrder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "asc" {
		return repo.SortAsc
	}
	return repo.SortDesc
}

func parsePositive(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// PageMeta は一覧レスポンスのメタ情報。
type PageMeta struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalPages    int64 `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
}

// NewPageMeta は総件数とページ条件からメタ情報を作る純関数。
// totalPages = ceil(total / pageSize)。total = 0 なら 0。
// pageSize > 0 は QueryBuilder のデフォルト丸めで保証される前提。
func NewPageMeta(total int64, page int, pageSize int) PageMeta {
	var pages int64
	if pageSize > 0 && total > 0 {
		pages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return PageMeta{
		TotalProducts: total,
		TotalPages:    pages,
		CurrentPage:   page,
		PageSize:      pageSize,
	}
}
