package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// CreateClient handles POST /api/v1/clients
func (h *Handlers) CreateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.CreateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rules := domain.DefaultWorkflowRules()
		if req.WorkflowRules != nil {
			rules = req.WorkflowRules.ToWorkflowRules()
		}

		client, err := h.clients.CreateClient(c.Request.Context(), application.CreateClientCommand{
			Code:          req.Code,
			Name:          req.Name,
			Contacts:      dto.ToContacts(req.Contacts),
			WorkflowRules: rules,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"client.id":   client.ClientID,
			"client.code": client.Code,
		})

		c.JSON(http.StatusCreated, dto.FromClient(client))
	}
}

// GetClient handles GET /api/v1/clients/:clientId
func (h *Handlers) GetClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		client, err := h.clients.GetClient(c.Request.Context(), c.Param("clientId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if client == nil {
			responder.RespondNotFound("client")
			return
		}

		c.JSON(http.StatusOK, dto.FromClient(client))
	}
}

// ListClients handles GET /api/v1/clients
func (h *Handlers) ListClients() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		clients, err := h.clients.ListClients(c.Request.Context(), paginationFromQuery(c))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromClientList(clients))
	}
}

// UpdateClient handles PUT /api/v1/clients/:clientId
func (h *Handlers) UpdateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.UpdateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client, err := h.clients.UpdateClient(c.Request.Context(), application.UpdateClientCommand{
			ClientID: c.Param("clientId"),
			Name:     req.Name,
			Contacts: dto.ToContacts(req.Contacts),
			Active:   req.Active,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromClient(client))
	}
}

// UpdateClientWorkflowRules handles PUT /api/v1/clients/:clientId/workflow-rules
func (h *Handlers) UpdateClientWorkflowRules() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.WorkflowRulesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"client.id": c.Param("clientId"),
		})

		client, err := h.clients.UpdateWorkflowRules(c.Request.Context(), application.UpdateWorkflowRulesCommand{
			ClientID: c.Param("clientId"),
			Rules:    req.ToWorkflowRules(),
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromClient(client))
	}
}
