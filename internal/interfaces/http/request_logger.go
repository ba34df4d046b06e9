package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Los errores internos que writeError dejó en Locals salen a nivel error.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if internal, ok := c.Locals(LocalError).(error); ok {
			ev = log.Error().Err(internal)
		} else if chainErr != nil {
			ev = log.Error().Err(chainErr)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user", GetUsername(c)).
			Msg("http request")
		return chainErr
	}
}
