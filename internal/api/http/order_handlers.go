package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// CreateOrder handles POST /api/v1/orders
func (h *Handlers) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.CreateOrderCommand{
			OrderID:         req.OrderID,
			ReferenceNumber: req.ReferenceNumber,
			Supplier:        req.Supplier,
			ClientID:        req.ClientID,
			WarehouseID:     middleware.GetWarehouseID(c),
			ExpectedDate:    req.ExpectedDate,
			LineItems:       req.ToLineItems(),
			Checklist:       req.Checklist,
		}

		order, err := h.receiving.CreateOrder(c.Request.Context(), cmd)
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id": order.OrderID,
		})
		if h.metrics != nil {
			h.metrics.RecordOrderCreated(order.ClientID)
		}

		c.JSON(http.StatusCreated, dto.FromOrder(order))
	}
}

// GetOrder handles GET /api/v1/orders/:orderId
func (h *Handlers) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		orderID := c.Param("orderId")
		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id": orderID,
		})

		order, err := h.receiving.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if order == nil {
			responder.RespondNotFound("order")
			return
		}

		c.JSON(http.StatusOK, dto.FromOrder(order))
	}
}

// ListOrders handles GET /api/v1/orders
func (h *Handlers) ListOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := domain.OrderStatus(raw)
			if !s.IsValid() {
				responder.RespondBadRequest("invalid order status")
				return
			}
			status = &s
		}

		orders, err := h.receiving.ListOrders(c.Request.Context(), status, c.Query("clientId"), paginationFromQuery(c))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromOrderList(orders))
	}
}

// AdvanceOrderStatus handles POST /api/v1/orders/:orderId/advance
func (h *Handlers) AdvanceOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		orderID := c.Param("orderId")

		// The body is optional; an empty one keeps the header user.
		var req dto.AdvanceStatusRequest
		_ = c.ShouldBindJSON(&req)

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id": orderID,
		})

		order, err := h.receiving.AdvanceStatus(c.Request.Context(), application.AdvanceStatusCommand{
			OrderID: orderID,
			UserID:  userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordOrderTransition(string(order.Status), "advance")
		}

		c.JSON(http.StatusOK, dto.FromOrder(order))
	}
}

// MarkOrderComplete handles POST /api/v1/orders/:orderId/complete
func (h *Handlers) MarkOrderComplete() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		orderID := c.Param("orderId")

		var req dto.MarkCompleteRequest
		_ = c.ShouldBindJSON(&req)

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id": orderID,
		})

		order, err := h.receiving.MarkComplete(c.Request.Context(), application.MarkCompleteCommand{
			OrderID: orderID,
			UserID:  userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordOrderTransition(string(order.Status), "mark_complete")
		}

		c.JSON(http.StatusOK, dto.FromOrder(order))
	}
}

// ReceiveItem handles POST /api/v1/orders/:orderId/lines/:lineItemId/receive
func (h *Handlers) ReceiveItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		orderID := c.Param("orderId")
		lineItemID := c.Param("lineItemId")

		var req dto.ReceiveItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id":     orderID,
			"line_item.id": lineItemID,
			"receive.mode": receiveMode(req),
		})

		outcome, err := h.receiving.ReceiveItem(c.Request.Context(), application.ReceiveItemCommand{
			OrderID:    orderID,
			LineItemID: lineItemID,
			Quantity:   req.Quantity,
			LotEntries: req.ToLotEntries(),
			PalletMode: req.PalletMode,
			LPN:        req.LPN,
			LocationID: req.LocationID,
			UserID:     userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordItemsReceived(receiveMode(req), outcome.Report.Succeeded)
		}

		// Partial lot failures return the report alongside the order
		// state instead of an error status.
		c.JSON(http.StatusOK, dto.FromReceiveOutcome(outcome))
	}
}

func receiveMode(req dto.ReceiveItemRequest) string {
	switch {
	case req.PalletMode:
		return "pallet"
	case len(req.LotEntries) > 0:
		return "lot"
	default:
		return "plain"
	}
}

// RejectItem handles POST /api/v1/orders/:orderId/lines/:lineItemId/reject
func (h *Handlers) RejectItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		orderID := c.Param("orderId")
		lineItemID := c.Param("lineItemId")

		var req dto.RejectItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id":     orderID,
			"line_item.id": lineItemID,
		})

		order, err := h.receiving.RejectItem(c.Request.Context(), application.RejectItemCommand{
			OrderID:    orderID,
			LineItemID: lineItemID,
			Quantity:   req.Quantity,
			Reason:     req.Reason,
			Notes:      req.Notes,
			UserID:     userIDFrom(c, req.UserID),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordItemsRejected(req.Reason, req.Quantity)
		}

		c.JSON(http.StatusOK, dto.FromOrder(order))
	}
}

// ToggleChecklistEntry handles PUT /api/v1/orders/:orderId/checklist/:entryId
func (h *Handlers) ToggleChecklistEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.ToggleChecklistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := h.receiving.ToggleChecklist(c.Request.Context(), application.ToggleChecklistCommand{
			OrderID:   c.Param("orderId"),
			EntryID:   c.Param("entryId"),
			Completed: req.Completed,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromOrder(order))
	}
}

// GetOrderWorkflowRules handles GET /api/v1/orders/:orderId/workflow-rules
func (h *Handlers) GetOrderWorkflowRules() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		rules, err := h.receiving.GetWorkflowRulesForOrder(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromWorkflowRules(rules))
	}
}

// CreatePallet handles POST /api/v1/pallets
func (h *Handlers) CreatePallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.CreatePalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pallet, err := h.receiving.CreatePallet(c.Request.Context(), application.CreatePalletCommand{
			LPN:           req.LPN,
			ContainerType: req.ContainerType,
			LocationID:    req.LocationID,
			ClientID:      req.ClientID,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"pallet.lpn": pallet.LPN,
		})

		c.JSON(http.StatusCreated, dto.FromPallet(pallet))
	}
}

// ListOpenPallets handles GET /api/v1/pallets
func (h *Handlers) ListOpenPallets() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		pallets, err := h.receiving.ListOpenPallets(c.Request.Context(), paginationFromQuery(c))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromPalletList(pallets))
	}
}

// GenerateLotNumber handles POST /api/v1/lot-numbers/generate
func (h *Handlers) GenerateLotNumber() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.GenerateLotNumberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lotNumber, err := h.receiving.GenerateLotNumber(c.Request.Context(), application.GenerateLotNumberCommand{
			ClientID: req.ClientID,
			SKU:      req.SKU,
			Supplier: req.Supplier,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.LotNumberResponse{LotNumber: lotNumber})
	}
}
