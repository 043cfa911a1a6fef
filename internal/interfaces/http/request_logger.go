package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver recibe la duración de cada petición (implementado por metrics.Metrics).
type RequestObserver interface {
	ObserveHTTPRequest(method, route, status string, d time.Duration)
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
// observer puede ser nil.
func RequestLogger(log zerolog.Logger, observer RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler fije el status antes de registrarlo
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		// ruta registrada, no el path con IDs, para no disparar la cardinalidad
		route := c.Route().Path
		if observer != nil {
			observer.ObserveHTTPRequest(c.Method(), route, strconv.Itoa(status), latency)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Msg("petición HTTP")
		return nil
	}
}
