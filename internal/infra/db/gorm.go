package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
)

// Handle はDB接続のライフサイクルを持つ。mainで作ってDIし、終了時にCloseする。
type Handle struct {
	gorm *gorm.DB
}

// Open はDBへ接続して Handle を返す。
func Open(cfg config.Config) (*Handle, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.PostgresHost, cfg.PostgresPort,
			cfg.PostgresUser, cfg.PostgresPassword,
			cfg.PostgresDB, cfg.PostgresSSLMode,
		)
	}

	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Handle{gorm: g}, nil
}

// Migrate はモデル定義をスキーマへ反映する。起動時に1回。
func (h *Handle) Migrate() error {
	return h.gorm.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingAddress{},
		&model.PaymentSettings{},
	)
}

// DB は下層のgormハンドルを返す（infra/repository用）
func (h *Handle) DB() *gorm.DB {
	return h.gorm
}

// Close は接続プールを閉じる。
func (h *Handle) Close() error {
	sqlDB, err := h.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
