package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// ProductUsecase は公開カタログとキュレーターの商品管理。
type ProductUsecase struct {
	products repo.ProductRepository
	variants repo.VariantRepository
	tx       repo.TransactionManager
	log      *zap.Logger
}

func NewProductUsecase(products repo.ProductRepository, variants repo.VariantRepository, tx repo.TransactionManager, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, variants: variants, tx: tx, log: log}
}

type ProductDetailOutput struct {
	Product  model.Product          `json:"product"`
	Variants []model.ProductVariant `json:"variants"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	items, total, err := u.products.ListPublic(ctx, q)
	if err != nil {
		return nil, 0, internalError(u.log, "products.list", err)
	}
	return items, total, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, id int64) (ProductDetailOutput, error) {
	if id <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDetailOutput{}, internalError(u.log, "products.find", err)
	}

	variants, err := u.variants.ListByProductID(ctx, id)
	if err != nil {
		return ProductDetailOutput{}, internalError(u.log, "products.variants", err)
	}

	return ProductDetailOutput{Product: p, Variants: variants}, nil
}

type ProductInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, curatorID int64, in ProductInput) (model.Product, error) {
	if curatorID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		CuratorID:   curatorID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Tags:        in.Tags,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Product{}, internalError(u.log, "products.create", err)
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, curatorID int64, productID int64, in ProductInput) (model.Product, error) {
	p, err := u.findOwned(ctx, curatorID, productID)
	if err != nil {
		return model.Product{}, err
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Price = in.Price
	p.Category = strings.TrimSpace(in.Category)
	p.Tags = in.Tags
	p.Stock = in.Stock
	p.IsActive = in.IsActive

	if err := u.products.Update(ctx, p); err != nil {
		return model.Product{}, internalError(u.log, "products.update", err)
	}
	return p, nil
}

// DeleteProduct はソフトデリート。注文から参照され得るので物理削除はしない。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, curatorID int64, productID int64) error {
	if _, err := u.findOwned(ctx, curatorID, productID); err != nil {
		return err
	}
	if err := u.products.SoftDelete(ctx, productID); err != nil {
		return internalError(u.log, "products.delete", err)
	}
	return nil
}

type DefineVariantsInput struct {
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	TotalStock int64    `json:"total_stock"`
}

// DefineVariants はサイズ×カラーの直積でバリアント行を作り直す。
// TotalStock を行数で均等配分し、端数は先頭の行から1個ずつ足す。
func (u *ProductUsecase) DefineVariants(ctx context.Context, curatorID int64, productID int64, in DefineVariantsInput) ([]model.ProductVariant, error) {
	p, err := u.findOwned(ctx, curatorID, productID)
	if err != nil {
		return nil, err
	}

	sizes, err := normalizeOptions(in.Sizes, "sizes")
	if err != nil {
		return nil, err
	}
	colors, err := normalizeOptions(in.Colors, "colors")
	if err != nil {
		return nil, err
	}
	if in.TotalStock < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "total_stock must not be negative")
	}

	n := int64(len(sizes) * len(colors))
	per := in.TotalStock / n
	rem := in.TotalStock % n

	variants := make([]model.ProductVariant, 0, n)
	for _, size := range sizes {
		for _, color := range colors {
			stock := per
			if rem > 0 {
				stock++
				rem--
			}
			variants = append(variants, model.ProductVariant{
				ProductID:     productID,
				Size:          size,
				Color:         color,
				StockQuantity: stock,
			})
		}
	}

	//バリアント入れ替えと商品側のサイズ/カラー定義更新は1トランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Variants().ReplaceForProduct(ctx, productID, variants); err != nil {
			return internalError(u.log, "variants.replace", err)
		}

		p.Sizes = strings.Join(sizes, ",")
		p.Colors = strings.Join(colors, ",")
		if err := r.Products().Update(ctx, p); err != nil {
			return internalError(u.log, "variants.update_product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return variants, nil
}

func (u *ProductUsecase) findOwned(ctx context.Context, curatorID int64, productID int64) (model.Product, error) {
	if curatorID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, internalError(u.log, "products.find_owned", err)
	}
	if p.CuratorID != curatorID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return p, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}
	return nil
}

// normalizeOptions はサイズ/カラーのリストを整形する。
// 空要素・重複・カンマ入り（区切り文字と衝突）は弾く。
func normalizeOptions(values []string, field string) ([]string, error) {
	if len(values) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, field+" must not be empty")
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, NewHTTPError(http.StatusBadRequest, field+" must not contain empty values")
		}
		if strings.Contains(v, ",") {
			return nil, NewHTTPError(http.StatusBadRequest, field+" must not contain commas")
		}
		if _, dup := seen[v]; dup {
			return nil, NewHTTPError(http.StatusBadRequest, field+" must not contain duplicates")
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
