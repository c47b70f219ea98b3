package main

import (
	_ "order_desk/docs"
	"order_desk/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Draft Order Desk API
// @version         1.0
// @description     Draft order desk: per-customer order review, line pricing, quantity edits, product search and price breakdown export.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
