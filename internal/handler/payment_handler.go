package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"
)

type PaymentHandler struct {
	uc *usecase.PaymentSettingsUsecase
}

func NewPaymentHandler(uc *usecase.PaymentSettingsUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//公開参照（購入ページ用）
	e.GET("/curators/:id/payment-methods", h.publicMethods)

	g := e.Group("/curator/payment-settings")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.CuratorGuard())

	g.GET("", h.mySettings)
	g.PUT("", h.updateSettings)
}

// 設定が無い/読めないキュレーターでも200で空の手段リストを返す
func (h *PaymentHandler) publicMethods(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out := h.uc.GetPublicMethods(c.Request().Context(), id)
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) mySettings(c echo.Context) error {
	curatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMySettings(c.Request().Context(), curatorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) updateSettings(c echo.Context) error {
	curatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.UpdateSettingsInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateSettings(c.Request().Context(), curatorID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
