package model

import "time"

// ShippingAddress は注文1件につき1行のスナップショット。
// 複数キュレーターのチェックアウトでは注文ごとに複製する（参照共有しない）。
type ShippingAddress struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;uniqueIndex" json:"order_id"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone      string    `gorm:"type:varchar(30);not null" json:"phone"`
	Line1      string    `gorm:"type:varchar(255);not null" json:"line1"`
	Line2      string    `gorm:"type:varchar(255)" json:"line2"`
	City       string    `gorm:"type:varchar(100);not null" json:"city"`
	Region     string    `gorm:"type:varchar(100)" json:"region"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
