package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

// ctxActor builds the normalized {userId, role} tuple from the claims the
// Auth middleware injected. Built once at the transport boundary; the core
// trusts it verbatim and never re-reads raw claims.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: userID, Role: domain.Role(role)}, nil
}
