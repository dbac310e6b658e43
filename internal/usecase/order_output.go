package usecase

import (
	"time"

	"marketplace/internal/domain/model"
)

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type ShippingAddressOutput struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type OrderOutput struct {
	ID            int64                  `json:"id"`
	CheckoutID    string                 `json:"checkout_id"`
	BuyerID       int64                  `json:"buyer_id"`
	CuratorID     int64                  `json:"curator_id"`
	Status        string                 `json:"status"`
	TotalAmount   int64                  `json:"total_amount"`
	Commission    int64                  `json:"commission"`
	CuratorAmount int64                  `json:"curator_amount"`
	PaymentMethod string                 `json:"payment_method"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []OrderItemOutput      `json:"items"`
	Address       *ShippingAddressOutput `json:"shipping_address,omitempty"`
}

func toOrderOutput(o model.Order, items []model.OrderItem, addr *model.ShippingAddress) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Title:     it.TitleSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	out := OrderOutput{
		ID:            o.ID,
		CheckoutID:    o.CheckoutID,
		BuyerID:       o.BuyerID,
		CuratorID:     o.CuratorID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		Commission:    o.Commission,
		CuratorAmount: o.CuratorAmount,
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}

	if addr != nil {
		out.Address = &ShippingAddressOutput{
			FullName:   addr.FullName,
			Phone:      addr.Phone,
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			Region:     addr.Region,
			PostalCode: addr.PostalCode,
		}
	}

	return out
}
