package model

import "time"

// ProductVariant は (product, size, color) ごとの在庫1行。
// StockQuantity は常に0以上。減算は注文確定時、加算はキャンセル時のみ。
type ProductVariant struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     int64     `gorm:"not null;uniqueIndex:ux_variant,priority:1" json:"product_id"`
	Size          string    `gorm:"type:varchar(50);not null;uniqueIndex:ux_variant,priority:2" json:"size"`
	Color         string    `gorm:"type:varchar(50);not null;uniqueIndex:ux_variant,priority:3" json:"color"`
	StockQuantity int64     `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
