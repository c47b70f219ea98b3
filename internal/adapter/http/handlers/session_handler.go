package handlers

import (
	"context"
	"errors"
	"net/http"

	request "order_desk/internal/adapter/http/dto/request"
	response "order_desk/internal/adapter/http/dto/response"
	"order_desk/internal/usecase"
	"order_desk/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidSessionPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// SessionHandler exposes the desk screen: customer and order selection, quantity
// edits, line removal and save.

type SessionHandler struct {
	usecase usecase.ISessionUseCase
}

func NewSessionHandler(uc usecase.ISessionUseCase) *SessionHandler {
	return &SessionHandler{usecase: uc}
}

// OpenSession loads the open draft orders into a new session.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	view, err := h.usecase.Open(c.Request.Context())
	if err != nil {
		log.Printf("[desk][handler] open session failed err=%v", err)
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromSessionView(view))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), c.Param("session_id"))
	h.respond(c, view, err)
}

func (h *SessionHandler) CloseSession(c *gin.Context) {
	if err := h.usecase.Close(c.Request.Context(), c.Param("session_id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) SelectCustomer(c *gin.Context) {
	var payload request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	customerID := payload.ResolveCustomerID()
	if customerID == "" {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	view, err := h.usecase.SelectCustomer(c.Request.Context(), c.Param("session_id"), customerID)
	h.respond(c, view, err)
}

func (h *SessionHandler) SelectOrder(c *gin.Context) {
	var payload request.SelectOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	orderID := payload.ResolveOrderID()
	if orderID == "" {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	view, err := h.usecase.SelectOrder(c.Request.Context(), c.Param("session_id"), orderID)
	h.respond(c, view, err)
}

// SetQuantity forwards the raw field value; invalid quantities leave the session
// unchanged and still answer 200 with the current view.
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	var payload request.SetQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}
	view, err := h.usecase.SetQuantity(c.Request.Context(), c.Param("session_id"), c.Param("product_id"), payload.ResolveQuantity())
	h.respond(c, view, err)
}

func (h *SessionHandler) DeleteLine(c *gin.Context) {
	view, err := h.usecase.DeleteLine(c.Request.Context(), c.Param("session_id"), c.Param("product_id"))
	h.respond(c, view, err)
}

func (h *SessionHandler) Save(c *gin.Context) {
	sessionID := c.Param("session_id")
	log.Printf("[desk][handler] save start session_id=%s", sessionID)
	view, err := h.usecase.Save(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[desk][handler] save failed session_id=%s err=%v", sessionID, err)
	}
	h.respond(c, view, err)
}

func (h *SessionHandler) respond(c *gin.Context, view usecase.SessionView, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSessionView(view))
}

func (h *SessionHandler) fail(c *gin.Context, err error) {
	appErr := mapSessionError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSessionID), errors.Is(err, usecase.ErrInvalidProductID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Session not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLineNotFound):
		return pkg.NewDomainErrorSimple("LINE_NOT_FOUND", "Line not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotInResults):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_IN_RESULTS", "Product is not in the search results", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoOrderSelected):
		return pkg.NewDomainErrorSimple("NO_ORDER_SELECTED", "No order selected", http.StatusConflict)
	case errors.Is(err, usecase.ErrSaveDisabled):
		return pkg.NewDomainErrorSimple("SAVE_DISABLED", "No unsaved changes", http.StatusConflict)
	case errors.Is(err, usecase.ErrSaveFailed):
		return pkg.NewDomainError("SAVE_FAILED", "Failed to update draft order", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrSnapshotLoad):
		return pkg.NewDomainError("ORDERS_UNAVAILABLE", "Failed to load draft orders", err, http.StatusBadGateway)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkg.NewDomainErrorSimple("REQUEST_CANCELLED", "Request cancelled", http.StatusRequestTimeout)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
