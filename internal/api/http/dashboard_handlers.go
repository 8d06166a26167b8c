package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// GetDashboardSummary handles GET /api/v1/dashboard/summary. Failed
// sections degrade into the sectionErrors map rather than failing the
// whole response.
func (h *Handlers) GetDashboardSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		summary, err := h.dashboard.GetSummary(c.Request.Context())
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromDashboard(summary))
	}
}
