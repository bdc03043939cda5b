package handler

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mstanchev/vaxtrack/internal/pkg/errcode"
	"github.com/mstanchev/vaxtrack/internal/pkg/response"
	"github.com/mstanchev/vaxtrack/internal/service"
)

// APIHandler mirrors the web operations on the JSON surface.
type APIHandler struct {
	auth     *service.AuthService
	listings *service.ListingService
}

func NewAPIHandler(auth *service.AuthService, listings *service.ListingService) *APIHandler {
	return &APIHandler{auth: auth, listings: listings}
}

type apiRegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type apiLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiCreateListingRequest struct {
	From  string      `json:"from"`
	To    string      `json:"to"`
	Type  string      `json:"type"`
	Quant json.Number `json:"quant"`
}

func (h *APIHandler) Register(c *gin.Context) {
	var req apiRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	// The confirmation field is a form-surface concern; API clients
	// submit the password once.
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	token, err := h.auth.IssueToken(user)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

func (h *APIHandler) Login(c *gin.Context) {
	var req apiLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.LoginToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

func (h *APIHandler) List(c *gin.Context) {
	items, err := h.listings.ListAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

func (h *APIHandler) ListMine(c *gin.Context) {
	items, err := h.listings.ListByOwner(c.Request.Context(), getUserID(c), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

func (h *APIHandler) Create(c *gin.Context) {
	var req apiCreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	listing, err := h.listings.Create(c.Request.Context(), getUserID(c), req.From, req.To, req.Type, req.Quant.String())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}
