package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/askrepo/internal/database"
	"github.com/ahmednasr/askrepo/internal/service"
)

// HealthHandler reports the corpus backend and completion client state.
type HealthHandler struct {
	db         *mongo.Client
	corpusFile string
	ask        service.AskService
}

// NewHealthHandler takes the Mongo client when the corpus lives in MongoDB,
// or nil and the corpus file path otherwise.
func NewHealthHandler(db *mongo.Client, corpusFile string, ask service.AskService) *HealthHandler {
	return &HealthHandler{
		db:         db,
		corpusFile: corpusFile,
		ask:        ask,
	}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
		"corpus": h.checkCorpus(c),
		"llm": fiber.Map{
			"service": h.ask.Service(),
			"ready":   h.ask.Ready(),
		},
	}

	return c.JSON(status)
}

func (h *HealthHandler) checkCorpus(c *fiber.Ctx) fiber.Map {
	if h.db != nil {
		return fiber.Map{"backend": "mongo", "status": database.Ping(c.UserContext(), h.db)}
	}

	state := "readable"
	if _, err := os.Stat(h.corpusFile); err != nil {
		state = "missing"
	}
	return fiber.Map{"backend": "file", "path": h.corpusFile, "status": state}
}
