package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/constants"
	classDTO "sinchonkinder_backend/internals/features/school/classrooms/dto"
	authModel "sinchonkinder_backend/internals/features/users/auth/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type MemberController struct{ DB *gorm.DB }

func NewMemberController(db *gorm.DB) *MemberController { return &MemberController{DB: db} }

// ===================== ADMIN MEMBER LIST =====================
// GET /admin/members — parent accounts with their linked children. Children
// are batch-loaded with one query for the whole page instead of per member.
func (h *MemberController) List(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	base := h.DB.WithContext(ctx).
		Model(&authModel.UserModel{}).
		Where("user_role = ?", constants.RoleParent)
	if status := c.Query("status"); status != "" {
		base = base.Where("user_status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		log.Printf("[members:list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원 목록을 불러오지 못했습니다.")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "user_created_at",
		"email":      "user_email",
		"name":       "user_name",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원 목록을 불러오지 못했습니다.")
	}

	var users []authModel.UserModel
	if err := base.Session(&gorm.Session{}).
		Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		log.Printf("[members:list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원 목록을 불러오지 못했습니다.")
	}

	parentIDs := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		parentIDs = append(parentIDs, u.UserID)
	}

	childrenByParent := map[uuid.UUID][]classDTO.ChildResponse{}
	if len(parentIDs) > 0 {
		type linkedChildRow struct {
			ParentID       uuid.UUID  `gorm:"column:parent_id"`
			ChildID        uuid.UUID  `gorm:"column:child_id"`
			ChildName      string     `gorm:"column:child_name"`
			ChildStatus    string     `gorm:"column:child_status"`
			ClassroomID    *uuid.UUID `gorm:"column:classroom_id"`
			ClassroomName  *string    `gorm:"column:classroom_name"`
			ChildCreatedAt time.Time  `gorm:"column:child_created_at"`
		}
		var rows []linkedChildRow
		if err := h.DB.WithContext(ctx).
			Raw(`SELECT cp.child_parent_parent_id AS parent_id,
			            ch.child_id, ch.child_name, ch.child_status, ch.child_created_at,
			            cr.classroom_id, cr.classroom_name
			     FROM child_parents cp
			     JOIN children ch ON ch.child_id = cp.child_parent_child_id
			     LEFT JOIN classrooms cr ON cr.classroom_id = ch.child_classroom_id
			     WHERE cp.child_parent_parent_id = ANY(?)
			     ORDER BY ch.child_name ASC`, pq.Array(parentIDs)).
			Scan(&rows).Error; err != nil {
			log.Printf("[members:list] children: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "회원 목록을 불러오지 못했습니다.")
		}
		for _, r := range rows {
			childrenByParent[r.ParentID] = append(childrenByParent[r.ParentID], classDTO.ChildResponse{
				ChildID:       r.ChildID,
				Name:          r.ChildName,
				Status:        r.ChildStatus,
				ClassroomID:   r.ClassroomID,
				ClassroomName: r.ClassroomName,
				CreatedAt:     r.ChildCreatedAt,
			})
		}
	}

	items := make([]classDTO.MemberResponse, 0, len(users))
	for _, u := range users {
		children := childrenByParent[u.UserID]
		if children == nil {
			children = []classDTO.ChildResponse{}
		}
		items = append(items, classDTO.MemberResponse{
			UserID:     u.UserID,
			UserName:   u.UserName,
			UserEmail:  u.UserEmail,
			UserStatus: u.UserStatus,
			JoinedAt:   u.UserCreatedAt,
			Children:   children,
		})
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== ADMIN MEMBER STATUS =====================
// PATCH /admin/members/:id — approve (active) or suspend (pending) a parent.
func (h *MemberController) UpdateStatus(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req struct {
		Status string `json:"status" form:"status" validate:"required,oneof=pending active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	res := h.DB.WithContext(ctx).
		Model(&authModel.UserModel{}).
		Where("user_id = ? AND user_role = ?", userID, constants.RoleParent).
		Update("user_status", req.Status)
	if res.Error != nil {
		log.Printf("[members:status] update: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원 상태 변경 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "회원을 찾을 수 없습니다.")
	}
	return helper.JsonUpdated(c, "회원 상태가 변경되었습니다.", fiber.Map{
		"user_id":     userID,
		"user_status": req.Status,
	})
}
