package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続（ハンドルはここで作ってDIする）
	dbHandle, err := db.Open(cfg)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer dbHandle.Close()

	if err := dbHandle.Migrate(); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	gormDB := dbHandle.DB()

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	variantRepo := infraRepo.NewVariantGormRepository(gormDB)
	settingsRepo := infraRepo.NewPaymentSettingsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, log)
	productUC := usecase.NewProductUsecase(productRepo, variantRepo, txManager, log)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, log)
	orderUC := usecase.NewOrderUsecase(txManager, log)
	curatorOrderUC := usecase.NewCuratorOrderUsecase(txManager, log)
	paymentUC := usecase.NewPaymentSettingsUsecase(settingsRepo, log)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Order:        handler.NewOrderHandler(orderUC),
		CuratorOrder: handler.NewCuratorOrderHandler(curatorOrderUC),
		Payment:      handler.NewPaymentHandler(paymentUC),
	}

	srv := server.New(cfg, handlers, log)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	go func() {
		if err := srv.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	//SIGINT/SIGTERMでgraceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.GoEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
