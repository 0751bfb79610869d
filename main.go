package main

import (
	"log"

	"plms/config"
	authController "plms/controllers/auth"
	"plms/database"
	authRoutes "plms/routers/authRoutes"
	documentRoutes "plms/routers/documentRoutes"
	loanRoutes "plms/routers/loanRoutes"
	notificationRoutes "plms/routers/notificationRoutes"
	repaymentRoutes "plms/routers/repaymentRoutes"
	"plms/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	authController.SeedAdminAccount()
	scheduler.InitializeOverdueScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	loanRoutes.SetupLoanRoutes(app)
	repaymentRoutes.SetupRepaymentRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
