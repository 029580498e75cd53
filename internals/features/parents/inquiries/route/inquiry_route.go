package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	inquiryCtl "sinchonkinder_backend/internals/features/parents/inquiries/controller"
)

func InquiryParentRoutes(parents fiber.Router, db *gorm.DB) {
	ctl := inquiryCtl.NewInquiryController(db)

	grp := parents.Group("/inquiries")
	grp.Get("/", ctl.ParentList)
	grp.Get("/summary", ctl.ParentSummary)
	grp.Post("/", ctl.Create)
}

func InquiryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := inquiryCtl.NewInquiryController(db)

	grp := admin.Group("/parent-inquiries")
	grp.Get("/", ctl.AdminList)
	grp.Patch("/:id", ctl.AdminUpdate)
}
