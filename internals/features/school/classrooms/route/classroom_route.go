package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "sinchonkinder_backend/internals/features/school/classrooms/controller"
)

func ClassroomAdminRoutes(admin fiber.Router, db *gorm.DB) {
	classrooms := classCtl.NewClassroomController(db)
	children := classCtl.NewChildController(db)
	members := classCtl.NewMemberController(db)

	cg := admin.Group("/classrooms")
	cg.Get("/", classrooms.List)
	cg.Post("/", classrooms.Create)
	cg.Put("/:id", classrooms.Update)
	cg.Delete("/:id", classrooms.Delete)

	ch := admin.Group("/children")
	ch.Get("/", children.List)
	ch.Post("/", children.Create)
	ch.Put("/:id", children.Update)
	ch.Delete("/:id", children.Delete)
	ch.Post("/:id/parents", children.LinkParent)
	ch.Delete("/:id/parents/:parentId", children.UnlinkParent)

	mg := admin.Group("/members")
	mg.Get("/", members.List)
	mg.Patch("/:id", members.UpdateStatus)
}

func ClassroomParentRoutes(parents fiber.Router, db *gorm.DB) {
	dashboard := classCtl.NewDashboardController(db)
	parents.Get("/", dashboard.Dashboard)
}
