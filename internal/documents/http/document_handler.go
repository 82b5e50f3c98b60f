// Package http provides HTTP handlers for case document operations.
package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/documents/http/dto"
	documentsUseCase "github.com/tribunatech/casevault/internal/documents/usecase"
	"github.com/tribunatech/casevault/internal/httputil"
)

// DocumentHandler handles staff HTTP requests for case documents.
type DocumentHandler struct {
	documentUseCase documentsUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentUseCase documentsUseCase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// UploadHandler stores a document on a case.
// POST /v1/cases/:id/documents with form fields: file, title, description,
// document_type, visible_to_client
func (h *DocumentHandler) UploadHandler(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

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

	visibleToClient, _ := strconv.ParseBool(c.DefaultPostForm("visible_to_client", "false"))

	doc, err := h.documentUseCase.Upload(c.Request.Context(), documentsUseCase.UploadDocumentInput{
		CaseID:          caseID,
		DocumentType:    c.PostForm("document_type"),
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		Content:         content,
		ContentType:     fileHeader.Header.Get("Content-Type"),
		UploadedBy:      httputil.StaffActor(c),
		VisibleToClient: visibleToClient,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// ListHandler retrieves all documents of a case.
// GET /v1/cases/:id/documents
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	docs, err := h.documentUseCase.ListByCase(c.Request.Context(), caseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}
