package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"sinchonkinder_backend/internals/configs"
	"sinchonkinder_backend/internals/middlewares/gate"
	"sinchonkinder_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(gate.AccessGate(gate.Options{Secret: configs.AuthSecret}))
}
