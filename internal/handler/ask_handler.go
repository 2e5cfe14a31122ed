package handler

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/models"
	"github.com/ahmednasr/askrepo/internal/service"
)

// MsgMissingPrompt is the 400 body for a request without a question.
const MsgMissingPrompt = "Missing 'prompt' in request body."

// AskHandler wires HTTP → AskService.
type AskHandler struct {
	svc service.AskService
	l   *zap.Logger
}

// NewAskHandler returns a struct pointer so you can call Register on it.
func NewAskHandler(svc service.AskService, l *zap.Logger) *AskHandler {
	return &AskHandler{svc: svc, l: l.With(zap.String("component", "ask_handler"))}
}

// Register mounts the /llm_stream endpoint on the supplied router group.
func (h *AskHandler) Register(r fiber.Router) {
	r.Post("/llm_stream", h.stream)
}

// stream handles POST /llm_stream  { "prompt": "..." }
//
// The answer is written as a chunked text/plain body, one flush per
// increment. A write or flush failure means the client went away; returning
// from the writer stops the sequence, which closes the upstream session.
func (h *AskHandler) stream(c *fiber.Ctx) error {
	var req models.AskRequest
	if err := c.BodyParser(&req); err != nil || req.Prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgMissingPrompt)
	}

	if !h.svc.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fmt.Sprintf("%s client not configured", h.svc.Service()),
		})
	}

	// The fiber context is recycled once this handler returns, but the body
	// writer runs afterwards; the stream gets its own context.
	ctx, cancel := context.WithCancel(context.Background())

	answer, err := h.svc.Ask(ctx, req.Prompt)
	if err != nil {
		cancel()
		h.l.Error("failed to start stream", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start stream: " + err.Error(),
		})
	}

	l := h.l.With(zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)))

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for chunk := range answer {
			if _, err := w.WriteString(chunk); err != nil {
				l.Info("client disconnected", zap.Error(err))
				return
			}
			if err := w.Flush(); err != nil {
				l.Info("client disconnected", zap.Error(err))
				return
			}
		}
	})

	return nil
}
