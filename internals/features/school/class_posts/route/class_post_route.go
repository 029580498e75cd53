package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classPostCtl "sinchonkinder_backend/internals/features/school/class_posts/controller"
)

func ClassPostParentRoutes(parents fiber.Router, db *gorm.DB) {
	ctl := classPostCtl.NewClassPostController(db)

	grp := parents.Group("/posts")
	grp.Get("/", ctl.ParentList)
	grp.Get("/:id", ctl.ParentGetByID)
}

func ClassPostAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := classPostCtl.NewClassPostController(db)

	grp := admin.Group("/class-posts")
	grp.Get("/", ctl.AdminList)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
