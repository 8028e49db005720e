package model

import (
	"time"

	"github.com/lib/pq"
)

// Product はカタログの商品。
// discount は 0 で「割引なし」。images は表示順の画像URL。
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"type:numeric(12,2);not null" json:"price"`
	Discount      int            `gorm:"not null;default:0" json:"discount"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	CategoryID    int64          `gorm:"not null;index" json:"category_id"`
	SubcategoryID int64          `gorm:"not null;index" json:"subcategory_id"`
	BrandID       int64          `gorm:"not null;index" json:"brand_id"`
	ColorID       *int64         `gorm:"index" json:"color_id"`
	SizeID        *int64         `gorm:"index" json:"size_id"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
