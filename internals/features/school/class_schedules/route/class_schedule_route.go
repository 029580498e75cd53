package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleCtl "sinchonkinder_backend/internals/features/school/class_schedules/controller"
)

func ClassScheduleParentRoutes(parents fiber.Router, db *gorm.DB) {
	ctl := scheduleCtl.NewClassScheduleController(db)
	parents.Get("/schedule", ctl.ParentList)
}

func ClassScheduleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := scheduleCtl.NewClassScheduleController(db)

	grp := admin.Group("/class-schedules")
	grp.Get("/", ctl.AdminList)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
