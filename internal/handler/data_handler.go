package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/askrepo/internal/service"
)

// DataHandler wires HTTP → CorpusService.
type DataHandler struct {
	svc service.CorpusService
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(svc service.CorpusService) *DataHandler {
	return &DataHandler{svc: svc}
}

// Register mounts GET /data on the supplied router group.
func (h *DataHandler) Register(r fiber.Router) {
	r.Get("/data", h.getData)
}

// getData handles GET /data
func (h *DataHandler) getData(c *fiber.Ctx) error {
	corpus, err := h.svc.Snapshot(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(corpus)
}
