package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	resourceCtl "sinchonkinder_backend/internals/features/parents/resources/controller"
)

func ResourceParentRoutes(parents fiber.Router, db *gorm.DB) {
	ctl := resourceCtl.NewResourceController(db)
	parents.Get("/resources", ctl.ParentOverview)
}

func ResourceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := resourceCtl.NewResourceController(db)

	grp := admin.Group("/parent-resources")
	grp.Get("/", ctl.AdminList)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
