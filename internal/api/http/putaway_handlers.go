package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// CreatePutawayAssignment handles POST /api/v1/putaway/assignments
func (h *Handlers) CreatePutawayAssignment() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.CreatePutawayAssignmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id":    req.OrderID,
			"location.id": req.LocationID,
		})

		assignment, err := h.putaway.CreateAssignment(c.Request.Context(), application.CreatePutawayAssignmentCommand{
			OrderID:    req.OrderID,
			LocationID: req.LocationID,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, dto.FromAssignment(assignment))
	}
}

// GetPutawayAssignment handles GET /api/v1/putaway/assignments/:assignmentId
func (h *Handlers) GetPutawayAssignment() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		assignment, err := h.putaway.GetAssignment(c.Request.Context(), c.Param("assignmentId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if assignment == nil {
			responder.RespondNotFound("putaway assignment")
			return
		}

		c.JSON(http.StatusOK, dto.FromAssignment(assignment))
	}
}

// GetPutawayAssignmentByOrder handles GET /api/v1/putaway/assignments/order/:orderId
func (h *Handlers) GetPutawayAssignmentByOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		assignment, err := h.putaway.GetAssignmentForOrder(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if assignment == nil {
			responder.RespondNotFound("putaway assignment")
			return
		}

		c.JSON(http.StatusOK, dto.FromAssignment(assignment))
	}
}

// SelectSublocation handles PUT /api/v1/putaway/assignments/:assignmentId/selection
func (h *Handlers) SelectSublocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.SelectSublocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		assignment, err := h.putaway.SelectSublocation(c.Request.Context(), application.SelectSublocationCommand{
			AssignmentID:  c.Param("assignmentId"),
			LineItemID:    req.LineItemID,
			SublocationID: req.SublocationID,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromAssignment(assignment))
	}
}

// ConfirmPutawayItem handles POST /api/v1/putaway/assignments/:assignmentId/confirm
func (h *Handlers) ConfirmPutawayItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.ConfirmPutawayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"assignment.id": c.Param("assignmentId"),
			"line_item.id":  req.LineItemID,
		})

		assignment, err := h.putaway.ConfirmItem(c.Request.Context(), application.ConfirmPutawayCommand{
			AssignmentID: c.Param("assignmentId"),
			LineItemID:   req.LineItemID,
			UserID:       userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordPutawayConfirmed()
		}

		c.JSON(http.StatusOK, dto.FromAssignment(assignment))
	}
}

// ConfirmAllPutaway handles POST /api/v1/putaway/assignments/:assignmentId/confirm-all
func (h *Handlers) ConfirmAllPutaway() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.ConfirmAllPutawayRequest
		_ = c.ShouldBindJSON(&req)

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"assignment.id": c.Param("assignmentId"),
		})

		outcome, err := h.putaway.ConfirmAll(c.Request.Context(), application.ConfirmAllPutawayCommand{
			AssignmentID: c.Param("assignmentId"),
			UserID:       userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			for i := 0; i < outcome.Report.Succeeded; i++ {
				h.metrics.RecordPutawayConfirmed()
			}
		}

		c.JSON(http.StatusOK, dto.FromConfirmAll(outcome))
	}
}

// GetPutawaySuggestion handles GET /api/v1/putaway/suggestions
func (h *Handlers) GetPutawaySuggestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		locationID := c.Query("locationId")
		sku := c.Query("sku")
		if locationID == "" || sku == "" {
			responder.RespondBadRequest("locationId and sku are required")
			return
		}
		quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
		if err != nil || quantity <= 0 {
			responder.RespondBadRequest("quantity must be a positive integer")
			return
		}

		suggestion, err := h.putaway.GetSuggestion(c.Request.Context(), locationID, sku, quantity)
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromSuggestion(suggestion))
	}
}

// ListLocations handles GET /api/v1/putaway/locations
func (h *Handlers) ListLocations() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		locations, err := h.putaway.ListLocations(c.Request.Context())
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromLocationList(locations))
	}
}

// GetSublocations handles GET /api/v1/putaway/locations/:locationId/sublocations
func (h *Handlers) GetSublocations() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		sublocations, err := h.putaway.GetSublocations(c.Request.Context(), c.Param("locationId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		responses := make([]dto.SublocationResponse, 0, len(sublocations))
		for i := range sublocations {
			responses = append(responses, dto.FromSublocation(&sublocations[i]))
		}
		c.JSON(http.StatusOK, responses)
	}
}
