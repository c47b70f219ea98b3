package handlers

import (
	"net/http"

	request "order_desk/internal/adapter/http/dto/request"
	response "order_desk/internal/adapter/http/dto/response"
	"order_desk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SearchHandler exposes the product search box of a session.

type SearchHandler struct {
	usecase usecase.ISearchUseCase
}

func NewSearchHandler(uc usecase.ISearchUseCase) *SearchHandler {
	return &SearchHandler{usecase: uc}
}

// Search restarts the result list. A missing body searches with the empty query.
func (h *SearchHandler) Search(c *gin.Context) {
	var payload request.SearchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
			return
		}
	}
	view, err := h.usecase.Search(c.Request.Context(), c.Param("session_id"), payload.ResolveQuery())
	h.respond(c, view, err)
}

func (h *SearchHandler) GetSearch(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), c.Param("session_id"))
	h.respond(c, view, err)
}

func (h *SearchHandler) LoadMore(c *gin.Context) {
	view, err := h.usecase.LoadMore(c.Request.Context(), c.Param("session_id"))
	h.respond(c, view, err)
}

func (h *SearchHandler) SelectProduct(c *gin.Context) {
	var payload request.SelectProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	view, err := h.usecase.Select(c.Request.Context(), c.Param("session_id"), payload.ResolveProductID())
	h.respond(c, view, err)
}

func (h *SearchHandler) DeselectProduct(c *gin.Context) {
	view, err := h.usecase.Deselect(c.Request.Context(), c.Param("session_id"), c.Param("product_id"))
	h.respond(c, view, err)
}

func (h *SearchHandler) respond(c *gin.Context, view usecase.SearchView, err error) {
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSearchView(view))
}
