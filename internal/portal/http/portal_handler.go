package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribunatech/casevault/internal/httputil"
	"github.com/tribunatech/casevault/internal/portal/http/dto"
	portalUseCase "github.com/tribunatech/casevault/internal/portal/usecase"
)

// PortalHandler handles the token-gated client portal requests. No staff
// authentication applies here; the token in the query string is the only
// credential.
type PortalHandler struct {
	portalUseCase portalUseCase.PortalUseCase
	logger        *slog.Logger
}

// NewPortalHandler creates a new portal handler.
func NewPortalHandler(uc portalUseCase.PortalUseCase, logger *slog.Logger) *PortalHandler {
	return &PortalHandler{
		portalUseCase: uc,
		logger:        logger,
	}
}

// ViewHandler serves the client projection of the token's case.
// GET /portal/case?token=...
func (h *PortalHandler) ViewHandler(c *gin.Context) {
	view, err := h.portalUseCase.GetView(c.Request.Context(), c.Query("token"), c.ClientIP())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortalViewResponse(view))
}

// DocumentsHandler lists the client-visible documents of the token's case.
// GET /portal/documents?token=...
func (h *PortalHandler) DocumentsHandler(c *gin.Context) {
	docs, err := h.portalUseCase.ListDocuments(c.Request.Context(), c.Query("token"), c.ClientIP())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortalDocumentResponses(docs))
}

// UploadHandler accepts a multipart document upload from the client.
// POST /portal/documents?token=... with form fields: file, title, description
func (h *PortalHandler) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	err = h.portalUseCase.UploadDocument(c.Request.Context(), portalUseCase.PortalUploadInput{
		Token:       c.Query("token"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Content:     content,
		ContentType: fileHeader.Header.Get("Content-Type"),
		RemoteAddr:  c.ClientIP(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusCreated)
}
