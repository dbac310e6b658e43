package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"marketplace/internal/config"
	"marketplace/internal/handler"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	CuratorOrder *handler.CuratorOrderHandler
	Payment      *handler.PaymentHandler
}

// Server はechoを包んで起動/停止のライフサイクルを持つ。
type Server struct {
	echo *echo.Echo
	log  *zap.Logger
}

func New(cfg config.Config, h Handlers, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	registerRoutes(e, cfg, h)

	return &Server{echo: e, log: log}
}

func (s *Server) Start(addr string) error {
	s.log.Info("server starting", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown は処理中のリクエストを待ってから停止する。
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.echo.Shutdown(ctx)
}
