package routes

import (
	"order_desk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSessions = "/sessions"
)

func addDeskRoutes(rg *gin.RouterGroup, sessionHandler *handlers.SessionHandler, searchHandler *handlers.SearchHandler, exportHandler *handlers.ExportHandler) {
	sessions := rg.Group(PathSessions)
	{
		sessions.POST("", sessionHandler.OpenSession)
		sessions.GET("/:session_id", sessionHandler.GetSession)
		sessions.DELETE("/:session_id", sessionHandler.CloseSession)

		sessions.PUT("/:session_id/customer", sessionHandler.SelectCustomer)
		sessions.PUT("/:session_id/order", sessionHandler.SelectOrder)
		sessions.PATCH("/:session_id/lines/:product_id", sessionHandler.SetQuantity)
		sessions.DELETE("/:session_id/lines/:product_id", sessionHandler.DeleteLine)
		sessions.POST("/:session_id/save", sessionHandler.Save)

		sessions.GET("/:session_id/export", exportHandler.Export)
	}

	search := sessions.Group("/:session_id/search")
	{
		search.POST("", searchHandler.Search)
		search.GET("", searchHandler.GetSearch)
		search.POST("/more", searchHandler.LoadMore)
		search.POST("/selection", searchHandler.SelectProduct)
		search.DELETE("/selection/:product_id", searchHandler.DeselectProduct)
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
