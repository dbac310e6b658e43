package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page      int
	Limit     int
	Q         string
	Category  string
	CuratorID *int64
	MinPrice  *int64
	MaxPrice  *int64
	Sort      string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	// バリアントを持たない商品の集計在庫。足りるときだけ減算。
	DecrementStockIfAvailable(ctx context.Context, productID int64, qty int64) (bool, error)
	IncrementStock(ctx context.Context, productID int64, qty int64) error
}
