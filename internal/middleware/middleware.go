// Package middleware holds the fiber middleware stack shared by every route.
package middleware

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Use installs the middleware stack on app. Request ids must come first so
// every later middleware can log them.
func Use(app *fiber.App, l *zap.Logger, allowedOrigins []string) {
	app.Use(requestid.New())
	app.Use(Recover(l))
	app.Use(Logging(l))
	app.Use(CORS(allowedOrigins))
}

// Recover turns handler panics into 500 responses and logs the stack.
func Recover(l *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			l.Error("recovered from panic",
				zap.String("panic", fmt.Sprint(e)),
				zap.Stack("stack"),
				zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			)
		},
	})
}

// CORS allows the browser front end to call the API.
func CORS(allowedOrigins []string) fiber.Handler {
	wildcard := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	origins := "*"
	if !wildcard {
		origins = strings.Join(allowedOrigins, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Content-Type, Authorization, Origin, X-Request-ID",
		// fiber refuses credentials together with a wildcard origin.
		AllowCredentials: !wildcard,
		ExposeHeaders:    "Content-Length, X-Request-ID",
		MaxAge:           int((24 * time.Hour).Seconds()),
	})
}
