package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/service"
)

// RegisterRoutes mounts the API under /api and the health check at the root.
func RegisterRoutes(app *fiber.App,
	askSvc service.AskService,
	corpusSvc service.CorpusService,
	db *mongo.Client,
	corpusFile string,
	l *zap.Logger,
) {
	api := app.Group("/api")
	NewAskHandler(askSvc, l).Register(api)
	NewDataHandler(corpusSvc).Register(api)

	NewHealthHandler(db, corpusFile, askSvc).Register(app)
}
