package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ShippingAddressRepository interface {
	Create(ctx context.Context, addr model.ShippingAddress) (model.ShippingAddress, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error)
}
