package model

import "time"

// OrderItem は購入時点のスナップショット。作成後は不変。
type OrderItem struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64     `gorm:"not null;index" json:"order_id"`
	ProductID          int64     `gorm:"not null;index" json:"product_id"`
	TitleSnapshot      string    `gorm:"type:varchar(255);not null" json:"title_snapshot"`
	UnitPriceSnapshot  int64     `gorm:"not null" json:"unit_price_snapshot"`
	Quantity           int64     `gorm:"not null" json:"quantity"`
	Size               string    `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color              string    `gorm:"type:varchar(50)" json:"color,omitempty"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// HasVariant はサイズ/カラー指定ありの明細かどうか
func (it OrderItem) HasVariant() bool {
	return it.Size != "" || it.Color != ""
}
