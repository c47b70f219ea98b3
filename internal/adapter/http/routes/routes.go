package routes

import (
	"context"
	"io"
	_ "order_desk/docs" // This will be auto-generated
	"order_desk/internal/adapter/http/handlers"
	"order_desk/internal/adapter/persistence/repository"
	"order_desk/internal/infrastructure/config"
	"order_desk/internal/infrastructure/database"
	"order_desk/internal/infrastructure/documents"
	"order_desk/internal/infrastructure/events"
	"order_desk/internal/infrastructure/logging"
	"order_desk/internal/usecase"
	"order_desk/internal/usecase/interfaces"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	out := logging.Setup(conf)

	router := gin.New()
	setMiddlewares(router, out)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, conf)

	log.Infof("[desk][http] listening port=%d", conf.HTTP.Port)
	if err := router.Run(":" + strconv.Itoa(conf.HTTP.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(router *gin.Engine, conf config.Config) {
	ctx := context.Background()

	ddb := database.ConnectDynamoDB(ctx, conf)
	orderRepo := repository.NewDraftOrderDynamoRepository(ddb, conf.DynamoDB.DraftOrdersTable)
	imageRepo := repository.NewImageDynamoRepository(ddb, conf.DynamoDB.MediaTable)

	var catalog interfaces.IProductCatalog
	pool, err := database.ConnectPostgres(ctx, conf)
	if err != nil {
		log.Errorf("Product catalog not configured: %v", err)
	} else if pool != nil {
		catalog = repository.NewProductPostgresCatalog(pool)
	}

	var publisher interfaces.IEventPublisher = events.NoopPublisher{}
	if len(conf.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(conf.Kafka.Brokers, conf.Kafka.Topic)
	}

	registry := usecase.NewSessionRegistry()
	sessionUseCase := usecase.NewSessionUseCase(registry, orderRepo, imageRepo, catalog, publisher, usecase.SessionOptions{
		Location:       conf.Location(),
		SearchPageSize: conf.Search.PageSize,
		SearchDelay:    conf.SearchDelay(),
	})
	searchUseCase := usecase.NewSearchUseCase(registry)

	thumbnails := documents.NewThumbnailLoader(nil, 0)
	exportUseCase := usecase.NewExportUseCase(registry,
		usecase.ExportOptions{Location: conf.Location(), Note: conf.Export.Note},
		documents.NewPDFRenderer(documents.PDFOptions{
			ChromePath: conf.Export.ChromePath,
			Timeout:    conf.ExportTimeout(),
			Images:     thumbnails,
		}),
		documents.NewXLSXRenderer(thumbnails),
	)

	sessionHandler := handlers.NewSessionHandler(sessionUseCase)
	searchHandler := handlers.NewSearchHandler(searchUseCase)
	exportHandler := handlers.NewExportHandler(exportUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addDeskRoutes(v1, sessionHandler, searchHandler, exportHandler)
}

func setMiddlewares(router *gin.Engine, out io.Writer) {
	router.Use(gin.LoggerWithWriter(out))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
