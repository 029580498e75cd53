package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/constants"
	newsCtl "sinchonkinder_backend/internals/features/news/posts/controller"
)

// NewsPublicRoutes: category paths must be registered before the :slug
// wildcard or they would be swallowed by it.
func NewsPublicRoutes(app fiber.Router, db *gorm.DB) {
	ctl := newsCtl.NewNewsPostController(db)

	grp := app.Group("/news")
	grp.Get("/", ctl.List)
	grp.Get("/announcements", ctl.ListCategory(constants.CategoryAnnouncements))
	grp.Get("/newsletter", ctl.ListCategory(constants.CategoryNewsletter))
	grp.Get("/events", ctl.ListCategory(constants.CategoryEvents))
	grp.Get("/:slug", ctl.GetBySlug)
}

func NewsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := newsCtl.NewNewsPostController(db)

	grp := admin.Group("/news")
	grp.Get("/", ctl.AdminList)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
