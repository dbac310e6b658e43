package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// バリアント在庫の永続化。減算は必ず条件付きUPDATE（read-then-writeしない）。
type VariantRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error)
	Find(ctx context.Context, productID int64, size, color string) (model.ProductVariant, error)

	// 既存バリアントを置き換える（サイズ×カラーの再定義）
	ReplaceForProduct(ctx context.Context, productID int64, variants []model.ProductVariant) error

	// 在庫が足りるときだけ減算。足りなければ false。
	DecrementStockIfAvailable(ctx context.Context, productID int64, size, color string, qty int64) (bool, error)

	// 在庫戻し（キャンセル時のみ）
	IncrementStock(ctx context.Context, productID int64, size, color string, qty int64) error
}
