package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docrag/internal/app"
	"docrag/internal/transport/http/response"
)

const defaultQuery = "Your query..."

type ConversationHandler struct {
	conversationService *app.ConversationService
}

type QueryRequest struct {
	Query *string `json:"query"`
}

func NewConversationHandler(conversationService *app.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

func (h *ConversationHandler) Chat(c *gin.Context) {
	query, ok := bindQuery(c)
	if !ok {
		return
	}
	answer, err := h.conversationService.Chat(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, answer)
}

func (h *ConversationHandler) NewChat(c *gin.Context) {
	query, ok := bindQuery(c)
	if !ok {
		return
	}
	answer, err := h.conversationService.NewChat(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, answer)
}

// bindQuery accepts a bare JSON string or {"query": "..."}. An empty body
// falls back to the placeholder query.
func bindQuery(c *gin.Context) (string, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return "", false
	}
	if body := strings.TrimSpace(string(raw)); body == "" || body == "null" {
		return defaultQuery, true
	}

	var query string
	if err := json.Unmarshal(raw, &query); err == nil {
		return query, true
	}
	var req QueryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return "", false
	}
	if req.Query == nil {
		return defaultQuery, true
	}
	return *req.Query, true
}
