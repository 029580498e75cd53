package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtl "sinchonkinder_backend/internals/features/users/auth/controller"
	middlewares "sinchonkinder_backend/internals/middlewares"
)

func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctl := authCtl.NewAuthController(db)

	grp := app.Group("/member")

	grp.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grp.Post("/logout", ctl.Logout)
	grp.Get("/me", ctl.Me)
}
