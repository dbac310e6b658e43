package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// CheckoutUsecase はカートを注文へ確定する。
// キュレーターごとに1注文を作り、在庫減算と注文作成を1トランザクションで行う。
type CheckoutUsecase struct {
	tx  repo.TransactionManager
	log *zap.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, log *zap.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, log: log}
}

type CheckoutLine struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type ShippingAddressInput struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

type CheckoutInput struct {
	Lines         []CheckoutLine       `json:"lines"`
	Address       ShippingAddressInput `json:"shipping_address"`
	PaymentMethod string               `json:"payment_method"`
}

// 1キュレーター分の注文ドラフト
type orderDraft struct {
	curatorID int64
	items     []model.OrderItem
	total     int64
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, buyerID int64, in CheckoutInput) ([]OrderOutput, error) {
	if buyerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if !model.ValidPaymentMethod(method) {
		return nil, NewHTTPError(http.StatusBadRequest, "unknown payment method")
	}

	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}

	if len(in.Lines) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	for i, line := range in.Lines {
		if line.ProductID <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("line %d: invalid product_id", i+1))
		}
		if line.Quantity <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
	}

	//初期ステータス。カードはゲートウェイ待ち、ウォレットは証憑待ち。
	initialStatus := model.OrderStatusPending
	if method == model.PaymentMethodStripe {
		initialStatus = model.OrderStatusPendingPayment
	}

	checkoutID := uuid.NewString()
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//先に全行を検証してからでないと一切書き込まない。
		//（減算時にも条件付きUPDATEで再チェックされる）
		products := make(map[int64]model.Product, len(in.Lines))
		for i, line := range in.Lines {
			p, ok := products[line.ProductID]
			if !ok {
				var err error
				p, err = r.Products().FindByID(ctx, line.ProductID)
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, fmt.Sprintf("line %d: product %d not found", i+1, line.ProductID))
				}
				if err != nil {
					return internalError(u.log, "checkout.find_product", err)
				}
				products[line.ProductID] = p
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("line %d: product %q is not available", i+1, p.Title))
			}

			if hasVariantSelection(line) {
				v, err := r.Variants().Find(ctx, line.ProductID, line.Size, line.Color)
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound,
						fmt.Sprintf("line %d: variant (size=%s, color=%s) not found for product %q", i+1, line.Size, line.Color, p.Title))
				}
				if err != nil {
					return internalError(u.log, "checkout.find_variant", err)
				}
				if v.StockQuantity < line.Quantity {
					return NewHTTPError(http.StatusConflict,
						fmt.Sprintf("line %d: insufficient stock for product %q (size=%s, color=%s)", i+1, p.Title, line.Size, line.Color))
				}
			} else if p.Stock < line.Quantity {
				return NewHTTPError(http.StatusConflict, fmt.Sprintf("line %d: insufficient stock for product %q", i+1, p.Title))
			}
		}

		//キュレーター単位にまとめる（出現順を保つ）
		drafts := make(map[int64]*orderDraft)
		var curatorOrder []int64
		for _, line := range in.Lines {
			p := products[line.ProductID]
			d, ok := drafts[p.CuratorID]
			if !ok {
				d = &orderDraft{curatorID: p.CuratorID}
				drafts[p.CuratorID] = d
				curatorOrder = append(curatorOrder, p.CuratorID)
			}
			d.items = append(d.items, model.OrderItem{
				ProductID:         line.ProductID,
				TitleSnapshot:     p.Title,
				UnitPriceSnapshot: p.Price,
				Quantity:          line.Quantity,
				Size:              line.Size,
				Color:             line.Color,
			})
			d.total += p.Price * line.Quantity
		}

		//在庫予約。条件付きUPDATEなので並行チェックアウトと競合しても売り越さない。
		//1行でも失敗したらトランザクションごとロールバック。
		for i, line := range in.Lines {
			p := products[line.ProductID]
			var ok bool
			var err error
			if hasVariantSelection(line) {
				ok, err = r.Variants().DecrementStockIfAvailable(ctx, line.ProductID, line.Size, line.Color, line.Quantity)
			} else {
				ok, err = r.Products().DecrementStockIfAvailable(ctx, line.ProductID, line.Quantity)
			}
			if err != nil {
				return internalError(u.log, "checkout.reserve_stock", err)
			}
			if !ok {
				return NewHTTPError(http.StatusConflict,
					fmt.Sprintf("line %d: insufficient stock for product %q (size=%s, color=%s)", i+1, p.Title, line.Size, line.Color))
			}
		}

		//注文＋明細＋配送先をキュレーターごとに作成
		outs = make([]OrderOutput, 0, len(curatorOrder))
		for _, curatorID := range curatorOrder {
			d := drafts[curatorID]

			rate := model.DefaultCommissionRate
			settings, err := r.PaymentSettings().FindByCuratorID(ctx, curatorID)
			if err == nil {
				rate = settings.CommissionRate
			} else if !errors.Is(err, repo.ErrNotFound) {
				return internalError(u.log, "checkout.find_settings", err)
			}

			commission, curatorAmount := SplitTotal(d.total, rate)

			order := model.Order{
				CheckoutID:    checkoutID,
				BuyerID:       buyerID,
				CuratorID:     curatorID,
				Status:        initialStatus,
				TotalAmount:   d.total,
				Commission:    commission,
				CuratorAmount: curatorAmount,
				PaymentMethod: method,
			}
			orderID, err := r.Orders().Create(ctx, order)
			if err != nil {
				return internalError(u.log, "checkout.create_order", err)
			}
			order.ID = orderID

			if err := r.OrderItems().CreateBulk(ctx, orderID, d.items); err != nil {
				return internalError(u.log, "checkout.create_items", err)
			}

			//配送先は注文ごとにスナップショットを複製する
			addr, err := r.ShippingAddresses().Create(ctx, model.ShippingAddress{
				OrderID:    orderID,
				FullName:   in.Address.FullName,
				Phone:      in.Address.Phone,
				Line1:      in.Address.Line1,
				Line2:      in.Address.Line2,
				City:       in.Address.City,
				Region:     in.Address.Region,
				PostalCode: in.Address.PostalCode,
			})
			if err != nil {
				return internalError(u.log, "checkout.create_address", err)
			}

			outs = append(outs, toOrderOutput(order, d.items, &addr))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	u.log.Info("checkout completed",
		zap.String("checkout_id", checkoutID),
		zap.Int64("buyer_id", buyerID),
		zap.Int("orders", len(outs)),
	)
	return outs, nil
}

func hasVariantSelection(line CheckoutLine) bool {
	return line.Size != "" || line.Color != ""
}

func validateAddress(a ShippingAddressInput) error {
	if strings.TrimSpace(a.FullName) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping full_name is required")
	}
	if strings.TrimSpace(a.Phone) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping phone is required")
	}
	if strings.TrimSpace(a.Line1) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping line1 is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping city is required")
	}
	return nil
}
