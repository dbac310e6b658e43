package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/model"
)

// CuratorGuard はCURATORロール以外を403で弾く。AuthJWTの後段で使う。
func CuratorGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != string(model.RoleCurator) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
