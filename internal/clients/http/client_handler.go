// Package http provides HTTP handlers for client management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/clients/http/dto"
	clientsUseCase "github.com/tribunatech/casevault/internal/clients/usecase"
	"github.com/tribunatech/casevault/internal/httputil"
)

// ClientHandler handles HTTP requests for client management operations.
type ClientHandler struct {
	clientUseCase clientsUseCase.ClientUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientUseCase clientsUseCase.ClientUseCase, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUseCase,
		logger:        logger,
	}
}

// CreateHandler registers a new client.
// POST /v1/clients
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.CreateClient(c.Request.Context(), dto.ToCreateClientInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// GetHandler retrieves a client by ID.
// GET /v1/clients/:id
func (h *ClientHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.GetClient(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// ListHandler retrieves a page of clients.
// GET /v1/clients?offset=0&limit=50
func (h *ClientHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	clients, err := h.clientUseCase.ListClients(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients, offset, limit))
}
