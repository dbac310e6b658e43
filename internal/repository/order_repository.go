package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByBuyerID(ctx context.Context, buyerID int64, page int, limit int) ([]model.Order, int64, error)
	ListByCuratorID(ctx context.Context, curatorID int64, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// 無条件のステータス更新（遷移チェックは usecase 側）
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// 現ステータスが from のときだけ to へ更新。二重キャンセル防止の要。
	// 更新できなければ false。
	UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error)

	// ウォレット送金の確認情報を添えて PENDING_VERIFICATION へ
	AttachPaymentProof(ctx context.Context, orderID int64, transactionCode, proofURL string, status model.OrderStatus) error
}
