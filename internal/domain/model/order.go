package model

import "time"

type OrderStatus string

const (
	OrderStatusPending             OrderStatus = "PENDING"
	OrderStatusPendingVerification OrderStatus = "PENDING_VERIFICATION"
	OrderStatusPendingPayment      OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid                OrderStatus = "PAID"
	OrderStatusRejected            OrderStatus = "REJECTED"
	OrderStatusConfirmed           OrderStatus = "CONFIRMED"
	OrderStatusProcessing          OrderStatus = "PROCESSING"
	OrderStatusShipped             OrderStatus = "SHIPPED"
	OrderStatusDelivered           OrderStatus = "DELIVERED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
	OrderStatusRefunded            OrderStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodYape   PaymentMethod = "yape"
	PaymentMethodPlin   PaymentMethod = "plin"
)

// ValidPaymentMethod は受け付ける決済手段かどうか
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodStripe, PaymentMethodYape, PaymentMethodPlin:
		return true
	}
	return false
}

// IsWallet は手動ウォレット送金（コード+証憑で確認する方式）かどうか
func (m PaymentMethod) IsWallet() bool {
	return m == PaymentMethodYape || m == PaymentMethodPlin
}

// 状態遷移表。CANCELLED / REFUNDED は吸収状態。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:             {OrderStatusPendingVerification, OrderStatusPendingPayment, OrderStatusCancelled},
	OrderStatusPendingVerification: {OrderStatusPaid, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusPendingPayment:      {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:                {OrderStatusConfirmed, OrderStatusRefunded, OrderStatusCancelled},
	OrderStatusRejected:            {OrderStatusPendingVerification, OrderStatusCancelled},
	OrderStatusConfirmed:           {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:          {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:             {OrderStatusDelivered},
	OrderStatusDelivered:           {OrderStatusRefunded},
	OrderStatusCancelled:           {},
	OrderStatusRefunded:            {},
}

// CanTransitionTo は状態遷移表に沿った遷移かどうか
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable は買い手がまだキャンセルできる状態かどうか。
// SHIPPED / DELIVERED / CANCELLED / REFUNDED 以降は不可。
func (s OrderStatus) Cancellable() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return false
	}
	return true
}

// Terminal は終端状態かどうか
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusRefunded
}

// Order は (買い手, キュレーター) 1組につき1件。
// 複数キュレーターのカートは CheckoutID を共有する複数Orderになる。
type Order struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckoutID string `gorm:"type:varchar(36);not null;index" json:"checkout_id"`
	BuyerID    int64  `gorm:"not null;index" json:"buyer_id"`
	CuratorID  int64  `gorm:"not null;index" json:"curator_id"`

	Status OrderStatus `gorm:"type:varchar(30);not null;index" json:"status"`

	// TotalAmount = Commission + CuratorAmount（マイナー単位）
	TotalAmount   int64 `gorm:"not null" json:"total_amount"`
	Commission    int64 `gorm:"not null" json:"commission"`
	CuratorAmount int64 `gorm:"not null" json:"curator_amount"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`

	// 手動ウォレット送金の確認用
	TransactionCode string `gorm:"type:varchar(100)" json:"transaction_code,omitempty"`
	PaymentProofURL string `gorm:"type:varchar(500)" json:"payment_proof_url,omitempty"`

	// カード決済のゲートウェイ側ID（連携自体は別コンポーネント）
	PaymentIntentID string `gorm:"type:varchar(100)" json:"payment_intent_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
