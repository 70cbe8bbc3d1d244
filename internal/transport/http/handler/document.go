package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docrag/internal/app"
	"docrag/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *app.DocumentService
}

type ListDocumentsQuery struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=10"`
}

func NewDocumentHandler(documentService *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Process stores the uploaded PDF's text and indexes it in one step.
func (h *DocumentHandler) Process(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	id, err := h.documentService.Upload(ctx, header.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	message, err := h.documentService.Process(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, message)
}

func (h *DocumentHandler) List(c *gin.Context) {
	var q ListDocumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}

	names, err := h.documentService.List(q.Offset, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, names)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	content, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, content)
}
