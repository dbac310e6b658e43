package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Variants() VariantRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	ShippingAddresses() ShippingAddressRepository
	PaymentSettings() PaymentSettingsRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fn がエラーを返したら全ロールバック（在庫減算と注文作成はここで不可分になる）。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
