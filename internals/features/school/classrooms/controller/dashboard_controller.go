package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	classDTO "sinchonkinder_backend/internals/features/school/classrooms/dto"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type DashboardController struct{ DB *gorm.DB }

func NewDashboardController(db *gorm.DB) *DashboardController { return &DashboardController{DB: db} }

// ===================== PARENT DASHBOARD =====================
// GET /parents — the gate already guarantees an active parent session.
//
// Two sequential reads without a shared snapshot: a link change between the
// children query and the posts query can surface a post for a classroom the
// first result no longer shows. Accepted; a dashboard refresh self-heals.
func (h *DashboardController) Dashboard(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	type dashChildRow struct {
		ChildID       uuid.UUID  `gorm:"column:child_id"`
		ChildName     string     `gorm:"column:child_name"`
		ChildStatus   string     `gorm:"column:child_status"`
		ClassroomID   *uuid.UUID `gorm:"column:classroom_id"`
		ClassroomName *string    `gorm:"column:classroom_name"`
	}
	var childRows []dashChildRow
	if err := h.DB.WithContext(ctx).
		Raw(`SELECT ch.child_id, ch.child_name, ch.child_status,
		            cr.classroom_id, cr.classroom_name
		     FROM child_parents cp
		     JOIN children ch ON ch.child_id = cp.child_parent_child_id
		     LEFT JOIN classrooms cr ON cr.classroom_id = ch.child_classroom_id
		     WHERE cp.child_parent_parent_id = ?
		     ORDER BY ch.child_name ASC`, parentID).
		Scan(&childRows).Error; err != nil {
		log.Printf("[dashboard] children: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "대시보드를 불러오지 못했습니다.")
	}

	children := make([]classDTO.DashboardChild, 0, len(childRows))
	classroomIDs := make([]uuid.UUID, 0, len(childRows))
	seen := map[uuid.UUID]bool{}
	for _, r := range childRows {
		children = append(children, classDTO.DashboardChild{
			ChildID:       r.ChildID,
			Name:          r.ChildName,
			Status:        r.ChildStatus,
			ClassroomID:   r.ClassroomID,
			ClassroomName: r.ClassroomName,
		})
		if r.ClassroomID != nil && !seen[*r.ClassroomID] {
			seen[*r.ClassroomID] = true
			classroomIDs = append(classroomIDs, *r.ClassroomID)
		}
	}

	recent := []classDTO.DashboardPost{}
	if len(classroomIDs) > 0 {
		type dashPostRow struct {
			ClassPostID   uuid.UUID `gorm:"column:class_post_id"`
			Title         string    `gorm:"column:class_post_title"`
			Summary       *string   `gorm:"column:class_post_summary"`
			ClassroomName string    `gorm:"column:classroom_name"`
			PublishAt     time.Time `gorm:"column:class_post_publish_at"`
		}
		var postRows []dashPostRow
		if err := h.DB.WithContext(ctx).
			Raw(`SELECT p.class_post_id, p.class_post_title, p.class_post_summary,
			            p.class_post_publish_at, cr.classroom_name
			     FROM class_posts p
			     JOIN classrooms cr ON cr.classroom_id = p.class_post_classroom_id
			     WHERE p.class_post_classroom_id = ANY(?)
			       AND p.class_post_publish_at <= NOW()
			     ORDER BY p.class_post_publish_at DESC
			     LIMIT 5`, pq.Array(classroomIDs)).
			Scan(&postRows).Error; err != nil {
			log.Printf("[dashboard] posts: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "대시보드를 불러오지 못했습니다.")
		}
		for _, r := range postRows {
			recent = append(recent, classDTO.DashboardPost{
				ClassPostID:   r.ClassPostID,
				Title:         r.Title,
				Summary:       r.Summary,
				ClassroomName: r.ClassroomName,
				PublishAt:     r.PublishAt,
			})
		}
	}

	return helper.JsonOK(c, "", classDTO.DashboardResponse{
		Children:    children,
		RecentPosts: recent,
	})
}
