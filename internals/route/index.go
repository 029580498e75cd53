package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/constants"
	database "sinchonkinder_backend/internals/databases"
	newsRoute "sinchonkinder_backend/internals/features/news/posts/route"
	inquiryRoute "sinchonkinder_backend/internals/features/parents/inquiries/route"
	resourceRoute "sinchonkinder_backend/internals/features/parents/resources/route"
	classPostRoute "sinchonkinder_backend/internals/features/school/class_posts/route"
	scheduleRoute "sinchonkinder_backend/internals/features/school/class_schedules/route"
	classroomRoute "sinchonkinder_backend/internals/features/school/classrooms/route"
	authRoute "sinchonkinder_backend/internals/features/users/auth/route"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "신촌유치원 API", fiber.Map{
			"service": "sinchonkinder-backend",
		})
	})
	app.Get("/api/health", healthHandler(db))

	authRoute.AuthRoutes(app, db)
	newsRoute.NewsPublicRoutes(app, db)

	// ===================== PARENTS =====================
	// The gate middleware has already enforced an active parent session for
	// everything under /parents.
	parents := app.Group("/parents")
	classroomRoute.ClassroomParentRoutes(parents, db)
	classPostRoute.ClassPostParentRoutes(parents, db)
	scheduleRoute.ClassScheduleParentRoutes(parents, db)
	resourceRoute.ResourceParentRoutes(parents, db)
	inquiryRoute.InquiryParentRoutes(parents, db)

	// ===================== ADMIN =====================
	// Gate redirects non-admins before these run; handlers still call
	// EnsureAdmin so a route wired outside the prefix fails closed.
	admin := app.Group("/admin")
	admin.Get("/", adminOverviewHandler(db))
	newsRoute.NewsAdminRoutes(admin, db)
	classroomRoute.ClassroomAdminRoutes(admin, db)
	classPostRoute.ClassPostAdminRoutes(admin, db)
	scheduleRoute.ClassScheduleAdminRoutes(admin, db)
	resourceRoute.ResourceAdminRoutes(admin, db)
	inquiryRoute.InquiryAdminRoutes(admin, db)
}

// ===================== HEALTH =====================
// GET /api/health
func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"ok":        true,
			"database":  "reachable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ===================== ADMIN OVERVIEW =====================
// GET /admin — headline counts for the dashboard landing page.
func adminOverviewHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helperAuth.EnsureAdmin(c); err != nil {
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		}
		ctx := c.UserContext()

		type overviewRow struct {
			NewsPosts       int64 `gorm:"column:news_posts"`
			Classrooms      int64 `gorm:"column:classrooms"`
			Children        int64 `gorm:"column:children"`
			PendingParents  int64 `gorm:"column:pending_parents"`
			OpenInquiries   int64 `gorm:"column:open_inquiries"`
			ParentResources int64 `gorm:"column:parent_resources"`
		}
		var row overviewRow
		if err := db.WithContext(ctx).Raw(`
SELECT
  (SELECT COUNT(*) FROM news_posts)        AS news_posts,
  (SELECT COUNT(*) FROM classrooms)        AS classrooms,
  (SELECT COUNT(*) FROM children)          AS children,
  (SELECT COUNT(*) FROM users
    WHERE user_role = ? AND user_status = ?) AS pending_parents,
  (SELECT COUNT(*) FROM parent_inquiries
    WHERE parent_inquiry_status <> ?)       AS open_inquiries,
  (SELECT COUNT(*) FROM parent_resources)  AS parent_resources`,
			constants.RoleParent, constants.StatusPending, constants.InquiryCompleted).
			Scan(&row).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "현황을 불러오지 못했습니다.")
		}

		return helper.JsonOK(c, "", fiber.Map{
			"news_posts":       row.NewsPosts,
			"classrooms":       row.Classrooms,
			"children":         row.Children,
			"pending_parents":  row.PendingParents,
			"open_inquiries":   row.OpenInquiries,
			"parent_resources": row.ParentResources,
		})
	}
}
