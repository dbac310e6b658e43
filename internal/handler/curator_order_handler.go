package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"
)

type CuratorOrderHandler struct {
	uc *usecase.CuratorOrderUsecase
}

func NewCuratorOrderHandler(uc *usecase.CuratorOrderUsecase) *CuratorOrderHandler {
	return &CuratorOrderHandler{uc: uc}
}

func (h *CuratorOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/curator/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.CuratorGuard())

	g.GET("", h.list)
	g.POST("/:id/verify-payment", h.verifyPayment)
	g.POST("/:id/status", h.updateStatus)
}

func (h *CuratorOrderHandler) list(c echo.Context) error {
	curatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f := repo.OrderListFilter{
		Status: strings.TrimSpace(c.QueryParam("status")),
	}
	if v := c.QueryParam("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if t, ok := parseDateTime(c.QueryParam("from")); ok {
		f.From = t
	}
	if t, ok := parseDateTime(c.QueryParam("to")); ok {
		f.To = t
	}

	out, err := h.uc.List(c.Request().Context(), curatorID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CuratorOrderHandler) verifyPayment(c echo.Context) error {
	curatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.VerifyPaymentInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.VerifyPayment(c.Request().Context(), curatorID, id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CuratorOrderHandler) updateStatus(c echo.Context) error {
	curatorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.CuratorUpdateStatusInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), curatorID, id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// クエリの期間指定はRFC3339で受ける
func parseDateTime(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
