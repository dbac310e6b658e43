package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type TxReposMock struct {
	products   repo.ProductRepository
	variants   repo.VariantRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	addresses  repo.ShippingAddressRepository
	settings   repo.PaymentSettingsRepository
}

func (r *TxReposMock) Products() repo.ProductRepository                  { return r.products }
func (r *TxReposMock) Variants() repo.VariantRepository                  { return r.variants }
func (r *TxReposMock) Orders() repo.OrderRepository                      { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository              { return r.orderItems }
func (r *TxReposMock) ShippingAddresses() repo.ShippingAddressRepository { return r.addresses }
func (r *TxReposMock) PaymentSettings() repo.PaymentSettingsRepository   { return r.settings }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) DecrementStockIfAvailable(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) IncrementStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type VariantRepoMock struct{ mock.Mock }

func (m *VariantRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.ProductVariant)
	return items, args.Error(1)
}

func (m *VariantRepoMock) Find(ctx context.Context, productID int64, size, color string) (model.ProductVariant, error) {
	args := m.Called(ctx, productID, size, color)
	v, _ := args.Get(0).(model.ProductVariant)
	return v, args.Error(1)
}

func (m *VariantRepoMock) ReplaceForProduct(ctx context.Context, productID int64, variants []model.ProductVariant) error {
	args := m.Called(ctx, productID, variants)
	return args.Error(0)
}

func (m *VariantRepoMock) DecrementStockIfAvailable(ctx context.Context, productID int64, size, color string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, size, color, qty)
	return args.Bool(0), args.Error(1)
}

func (m *VariantRepoMock) IncrementStock(ctx context.Context, productID int64, size, color string, qty int64) error {
	args := m.Called(ctx, productID, size, color, qty)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByBuyerID(ctx context.Context, buyerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, buyerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListByCuratorID(ctx context.Context, curatorID int64, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, curatorID, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) AttachPaymentProof(ctx context.Context, orderID int64, transactionCode, proofURL string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, transactionCode, proofURL, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ShippingAddressRepoMock struct{ mock.Mock }

func (m *ShippingAddressRepoMock) Create(ctx context.Context, addr model.ShippingAddress) (model.ShippingAddress, error) {
	args := m.Called(ctx, addr)
	created, _ := args.Get(0).(model.ShippingAddress)
	return created, args.Error(1)
}

func (m *ShippingAddressRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(model.ShippingAddress)
	return a, args.Error(1)
}

type PaymentSettingsRepoMock struct{ mock.Mock }

func (m *PaymentSettingsRepoMock) FindByCuratorID(ctx context.Context, curatorID int64) (model.PaymentSettings, error) {
	args := m.Called(ctx, curatorID)
	s, _ := args.Get(0).(model.PaymentSettings)
	return s, args.Error(1)
}

func (m *PaymentSettingsRepoMock) Create(ctx context.Context, s model.PaymentSettings) (model.PaymentSettings, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.PaymentSettings)
	return created, args.Error(1)
}

func (m *PaymentSettingsRepoMock) Update(ctx context.Context, s model.PaymentSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// newTxRepos は各repoモックを束ねる
func newTxRepos(
	products *ProductRepoMock,
	variants *VariantRepoMock,
	orders *OrderRepoMock,
	orderItems *OrderItemRepoMock,
	addresses *ShippingAddressRepoMock,
	settings *PaymentSettingsRepoMock,
) *TxReposMock {
	return &TxReposMock{
		products:   products,
		variants:   variants,
		orders:     orders,
		orderItems: orderItems,
		addresses:  addresses,
		settings:   settings,
	}
}
