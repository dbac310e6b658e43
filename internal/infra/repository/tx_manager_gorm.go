package repository

import (
	"context"

	"gorm.io/gorm"

	repo "marketplace/internal/repository"
)

type txReposGorm struct {
	products        repo.ProductRepository
	variants        repo.VariantRepository
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	addresses       repo.ShippingAddressRepository
	paymentSettings repo.PaymentSettingsRepository
}

func (r *txReposGorm) Products() repo.ProductRepository                  { return r.products }
func (r *txReposGorm) Variants() repo.VariantRepository                  { return r.variants }
func (r *txReposGorm) Orders() repo.OrderRepository                      { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository              { return r.orderItems }
func (r *txReposGorm) ShippingAddresses() repo.ShippingAddressRepository { return r.addresses }
func (r *txReposGorm) PaymentSettings() repo.PaymentSettingsRepository   { return r.paymentSettings }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:        NewProductGormRepository(tx),
			variants:        NewVariantGormRepository(tx),
			orders:          NewOrderGormRepository(tx),
			orderItems:      NewOrderItemGormRepository(tx),
			addresses:       NewShippingAddressGormRepository(tx),
			paymentSettings: NewPaymentSettingsGormRepository(tx),
		}
		return fn(r)
	})
}
