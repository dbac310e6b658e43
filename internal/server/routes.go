package server

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/config"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.CuratorOrder.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)
}
