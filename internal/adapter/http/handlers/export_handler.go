package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"order_desk/internal/usecase"
	"order_desk/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ExportHandler streams the price breakdown document of a session's working order.

type ExportHandler struct {
	usecase usecase.IExportUseCase
}

func NewExportHandler(uc usecase.IExportUseCase) *ExportHandler {
	return &ExportHandler{usecase: uc}
}

// Export renders ?format=pdf|xlsx (default pdf) as an attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	sessionID := c.Param("session_id")
	format := c.DefaultQuery("format", "pdf")

	doc, err := h.usecase.Export(c.Request.Context(), sessionID, format)
	if err != nil {
		log.Printf("[desk][handler] export failed session_id=%s format=%s err=%v", sessionID, format, err)
		appErr := mapExportError(err, h.usecase.Formats())
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func mapExportError(err error, formats []string) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return pkg.NewDomainError("UNSUPPORTED_FORMAT", "Unsupported export format", errors.New("supported: "+strings.Join(formats, ", ")), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrRenderFailed):
		return pkg.NewDomainError("RENDER_FAILED", "Failed to render document", err, http.StatusBadGateway)
	default:
		return mapSessionError(err)
	}
}
