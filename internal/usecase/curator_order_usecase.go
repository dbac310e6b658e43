package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// CuratorOrderUsecase はキュレーター側の注文管理
// （入金確認・出荷までのステータス前進）。在庫には一切触らない。
type CuratorOrderUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewCuratorOrderUsecase(tx repo.TransactionManager, log *zap.Logger) *CuratorOrderUsecase {
	return &CuratorOrderUsecase{tx: tx, log: log}
}

func (u *CuratorOrderUsecase) List(ctx context.Context, curatorID int64, f repo.OrderListFilter) ([]OrderOutput, error) {
	if curatorID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByCuratorID(ctx, curatorID, f)
		if err != nil {
			return internalError(u.log, "curator_orders.list", err)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return internalError(u.log, "curator_orders.list_items", err)
			}
			outs = append(outs, toOrderOutput(o, items, nil))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type VerifyPaymentInput struct {
	Approve bool `json:"approve"`
}

// VerifyPayment は提出された送金証憑を承認（PAID）または却下（REJECTED）する。
func (u *CuratorOrderUsecase) VerifyPayment(ctx context.Context, curatorID int64, orderID int64, in VerifyPaymentInput) (OrderOutput, error) {
	if curatorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target := model.OrderStatusPaid
	if !in.Approve {
		target = model.OrderStatusRejected
	}

	return u.transition(ctx, curatorID, orderID, target, "verify_payment")
}

type CuratorUpdateStatusInput struct {
	Status string `json:"status"`
}

// UpdateStatus は履行側の前進遷移（CONFIRMED/PROCESSING/SHIPPED/DELIVERED）と
// 支払後の返金（REFUNDED）。キャンセルはここでは受け付けない
// （在庫戻しを伴うのは買い手のキャンセルだけ）。
func (u *CuratorOrderUsecase) UpdateStatus(ctx context.Context, curatorID int64, orderID int64, in CuratorUpdateStatusInput) (OrderOutput, error) {
	if curatorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target := model.OrderStatus(strings.TrimSpace(in.Status))
	switch target {
	case model.OrderStatusConfirmed, model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusRefunded:
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.transition(ctx, curatorID, orderID, target, "update_status")
}

func (u *CuratorOrderUsecase) transition(ctx context.Context, curatorID, orderID int64, target model.OrderStatus, op string) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return internalError(u.log, "curator_orders.find", err)
		}

		if o.CuratorID != curatorID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if !o.Status.CanTransitionTo(target) {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot move order from %s to %s", o.Status, target))
		}

		//読んだ時点のステータスからのみ遷移（並行更新は409で返す）
		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, o.Status, target)
		if err != nil {
			return internalError(u.log, "curator_orders.transition", err)
		}
		if !ok {
			return NewHTTPError(http.StatusConflict, "order status changed, please retry")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return internalError(u.log, "curator_orders.items", err)
		}

		before := o.Status
		o.Status = target
		out = toOrderOutput(o, items, nil)

		u.log.Info("order status updated",
			zap.String("op", op),
			zap.Int64("order_id", orderID),
			zap.Int64("curator_id", curatorID),
			zap.String("from", string(before)),
			zap.String("to", string(target)),
		)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
