package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/foxred/hillary/pkg/logger"
)

const localLogger = "logger"

// RequestLoggerMiddleware registra método, ruta, status y duración de cada petición
// y deja en c.Locals un sublogger con el request id.
func RequestLoggerMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID, c.Get(fiber.HeaderXRequestID))).
			Logger()
		c.Locals(localLogger, &reqLog)

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// RequestLogger devuelve el logger de la petición, o uno que descarta si el middleware no corrió.
func RequestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
