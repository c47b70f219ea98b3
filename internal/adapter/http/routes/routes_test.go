package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"order_desk/internal/adapter/http/handlers"
	"order_desk/internal/adapter/http/handlers/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAddDeskRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := gin.New()
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addDeskRoutes(v1,
		handlers.NewSessionHandler(mocks.NewMockISessionUseCase(ctrl)),
		handlers.NewSearchHandler(mocks.NewMockISearchUseCase(ctrl)),
		handlers.NewExportHandler(mocks.NewMockIExportUseCase(ctrl)),
	)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	expected := []string{
		"GET /v1/ping",
		"POST /v1/sessions",
		"GET /v1/sessions/:session_id",
		"DELETE /v1/sessions/:session_id",
		"PUT /v1/sessions/:session_id/customer",
		"PUT /v1/sessions/:session_id/order",
		"PATCH /v1/sessions/:session_id/lines/:product_id",
		"DELETE /v1/sessions/:session_id/lines/:product_id",
		"POST /v1/sessions/:session_id/save",
		"GET /v1/sessions/:session_id/export",
		"POST /v1/sessions/:session_id/search",
		"GET /v1/sessions/:session_id/search",
		"POST /v1/sessions/:session_id/search/more",
		"POST /v1/sessions/:session_id/search/selection",
		"DELETE /v1/sessions/:session_id/search/selection/:product_id",
	}
	for _, route := range expected {
		if !registered[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
