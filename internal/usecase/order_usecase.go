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

// OrderUsecase は買い手側の注文照会とライフサイクル操作。
type OrderUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, log: log}
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, buyerID int64) ([]OrderOutput, error) {
	if buyerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByBuyerID(ctx, buyerID, 1, 50)
		if err != nil {
			return internalError(u.log, "orders.list", err)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return internalError(u.log, "orders.list_items", err)
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

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, buyerID int64, orderID int64) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return internalError(u.log, "orders.find", err)
		}
		if o.BuyerID != buyerID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return internalError(u.log, "orders.find_items", err)
		}

		var addrPtr *model.ShippingAddress
		addr, err := r.ShippingAddresses().FindByOrderID(ctx, orderID)
		if err == nil {
			addrPtr = &addr
		} else if !errors.Is(err, repo.ErrNotFound) {
			return internalError(u.log, "orders.find_address", err)
		}

		out = toOrderOutput(o, items, addrPtr)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Cancel は買い手本人だけが実行できる。
// ステータス遷移と在庫戻しを同一トランザクションで行い、
// 条件付き遷移（現ステータス一致時のみ）で二重キャンセルの二重戻しを防ぐ。
func (u *OrderUsecase) Cancel(ctx context.Context, buyerID int64, orderID int64) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return internalError(u.log, "cancel.find", err)
		}

		if o.BuyerID != buyerID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if !o.Status.Cancellable() {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot cancel order in status %s", o.Status))
		}

		//読んだ時点のステータスからのみ遷移させる。
		//並行キャンセルが先に通っていたらここで止まり、在庫は戻さない。
		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, o.Status, model.OrderStatusCancelled)
		if err != nil {
			return internalError(u.log, "cancel.transition", err)
		}
		if !ok {
			return NewHTTPError(http.StatusConflict, "order status changed, please retry")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return internalError(u.log, "cancel.list_items", err)
		}

		//在庫を元に戻す。戻すのはこのキャンセル経路だけ。
		for _, it := range items {
			if it.HasVariant() {
				err = r.Variants().IncrementStock(ctx, it.ProductID, it.Size, it.Color, it.Quantity)
			} else {
				err = r.Products().IncrementStock(ctx, it.ProductID, it.Quantity)
			}
			if err != nil {
				return internalError(u.log, "cancel.restore_stock", err)
			}
		}

		var addrPtr *model.ShippingAddress
		addr, err := r.ShippingAddresses().FindByOrderID(ctx, orderID)
		if err == nil {
			addrPtr = &addr
		} else if !errors.Is(err, repo.ErrNotFound) {
			return internalError(u.log, "cancel.find_address", err)
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items, addrPtr)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.log.Info("order cancelled",
		zap.Int64("order_id", orderID),
		zap.Int64("buyer_id", buyerID),
	)
	return out, nil
}

type PaymentProofInput struct {
	TransactionCode string `json:"transaction_code"`
	ProofURL        string `json:"proof_url"`
}

// SubmitPaymentProof はウォレット送金の取引コードと証憑を登録し、
// 確認待ち（PENDING_VERIFICATION）へ進める。
func (u *OrderUsecase) SubmitPaymentProof(ctx context.Context, buyerID int64, orderID int64, in PaymentProofInput) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	code := strings.TrimSpace(in.TransactionCode)
	if code == "" || len(code) > 100 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid transaction_code")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return internalError(u.log, "proof.find", err)
		}

		if o.BuyerID != buyerID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if !o.PaymentMethod.IsWallet() {
			return NewHTTPError(http.StatusBadRequest, "order is not paid by wallet transfer")
		}
		if !o.Status.CanTransitionTo(model.OrderStatusPendingVerification) {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot submit payment proof in status %s", o.Status))
		}

		if err := r.Orders().AttachPaymentProof(ctx, orderID, code, strings.TrimSpace(in.ProofURL), model.OrderStatusPendingVerification); err != nil {
			return internalError(u.log, "proof.attach", err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return internalError(u.log, "proof.list_items", err)
		}

		o.TransactionCode = code
		o.PaymentProofURL = strings.TrimSpace(in.ProofURL)
		o.Status = model.OrderStatusPendingVerification
		out = toOrderOutput(o, items, nil)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
