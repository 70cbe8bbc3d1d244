package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docrag/internal/app"
	"docrag/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

// CredentialsRequest accepts empty strings but not missing fields.
type CredentialsRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

func (r CredentialsRequest) credentials() app.Credentials {
	return app.Credentials{Username: *r.Username, Password: *r.Password}
}

type UserQuery struct {
	Username string `form:"username"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.credentials())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{
		"message": "Login successful",
		"token":   result.Token,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}

	if err := h.authService.Register(req.credentials()); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, "Registration successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, "Logout successful")
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	var q UserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}

	user, err := h.authService.GetUser(q.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{
		"username": user.Username,
		"password": user.Password,
	})
}

func (h *AuthHandler) SetUser(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, detailInvalidPayload)
		return
	}

	if err := h.authService.SetUser(req.credentials()); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, "User details updated")
}
