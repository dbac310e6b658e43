package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CuratorID   int64  `gorm:"not null;index" json:"curator_id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// 価格はマイナー単位（セント）で保持する
	Price    int64  `gorm:"not null" json:"price"`
	Category string `gorm:"type:varchar(100);index" json:"category"`
	Tags     string `gorm:"type:text" json:"tags"`

	// カンマ区切りのサイズ/カラー定義。在庫の実体は product_variants 側。
	Sizes  string `gorm:"type:text" json:"sizes"`
	Colors string `gorm:"type:text" json:"colors"`

	// バリアントを持たない商品用の集計在庫
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasVariants は在庫管理がバリアント単位かどうか
func (p Product) HasVariants() bool {
	return p.Sizes != "" || p.Colors != ""
}
