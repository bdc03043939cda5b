package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/service"
)

// ListingHandler serves the listing gallery, the owner-scoped view and
// the add form.
type ListingHandler struct {
	listings *service.ListingService
	auth     *service.AuthService
}

func NewListingHandler(listings *service.ListingService, auth *service.AuthService) *ListingHandler {
	return &ListingHandler{listings: listings, auth: auth}
}

type addForm struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Type  string `form:"type"`
	Quant string `form:"quant"`
}

func (h *ListingHandler) Index(c *gin.Context) {
	search := c.Query("search")
	items, err := h.listings.ListAll(c.Request.Context(), search)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"items":  items,
		"search": search,
	})
}

func (h *ListingHandler) MyListings(c *gin.Context) {
	userID := getUserID(c)
	search := c.Query("search")
	items, err := h.listings.ListByOwner(c.Request.Context(), userID, search)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	name, err := h.auth.DisplayName(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "my_vaccs.html", gin.H{
		"items":  items,
		"user":   name,
		"search": search,
	})
}

func (h *ListingHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", gin.H{})
}

func (h *ListingHandler) Add(c *gin.Context) {
	var form addForm
	_ = c.ShouldBind(&form)
	_, err := h.listings.Create(c.Request.Context(), getUserID(c), form.From, form.To, form.Type, form.Quant)
	if err != nil {
		if ve, ok := appErr.AsValidation(err); ok {
			c.HTML(http.StatusOK, "add.html", gin.H{"msg": ve.Message})
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
