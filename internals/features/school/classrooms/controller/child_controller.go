package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/constants"
	classDTO "sinchonkinder_backend/internals/features/school/classrooms/dto"
	classModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	authModel "sinchonkinder_backend/internals/features/users/auth/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type ChildController struct{ DB *gorm.DB }

func NewChildController(db *gorm.DB) *ChildController { return &ChildController{DB: db} }

type childRow struct {
	ChildID        uuid.UUID  `gorm:"column:child_id"`
	ChildName      string     `gorm:"column:child_name"`
	ChildStatus    string     `gorm:"column:child_status"`
	ClassroomID    *uuid.UUID `gorm:"column:classroom_id"`
	ClassroomName  *string    `gorm:"column:classroom_name"`
	ChildCreatedAt time.Time  `gorm:"column:child_created_at"`
}

// ===================== ADMIN LIST =====================
// GET /admin/children?classroom_id=
func (h *ChildController) List(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	query := h.DB.WithContext(ctx).
		Table("children ch").
		Select(`ch.child_id, ch.child_name, ch.child_status, ch.child_created_at,
		        cr.classroom_id, cr.classroom_name`).
		Joins("LEFT JOIN classrooms cr ON cr.classroom_id = ch.child_classroom_id").
		Order("ch.child_name ASC")

	if raw := strings.TrimSpace(c.Query("classroom_id")); raw != "" {
		classroomID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		query = query.Where("ch.child_classroom_id = ?", classroomID)
	}

	var rows []childRow
	if err := query.Scan(&rows).Error; err != nil {
		log.Printf("[children:list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 목록을 불러오지 못했습니다.")
	}

	items := make([]classDTO.ChildResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, classDTO.ChildResponse{
			ChildID:       r.ChildID,
			Name:          r.ChildName,
			Status:        r.ChildStatus,
			ClassroomID:   r.ClassroomID,
			ClassroomName: r.ClassroomName,
			CreatedAt:     r.ChildCreatedAt,
		})
	}
	return helper.JsonOK(c, "", items)
}

// ===================== ADMIN CREATE =====================
// POST /admin/children
func (h *ChildController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req classDTO.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	child := classModel.ChildModel{
		ChildName:   strings.TrimSpace(req.Name),
		ChildStatus: "active",
	}
	if req.ClassroomID != nil {
		classroomID, err := uuid.Parse(*req.ClassroomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		if err := h.ensureClassroom(c, classroomID); err != nil {
			return err
		}
		child.ChildClassroomID = &classroomID
	}

	if err := h.DB.WithContext(ctx).Create(&child).Error; err != nil {
		log.Printf("[children:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "원아가 등록되었습니다.", child)
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/children/:id
func (h *ChildController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req classDTO.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	var child classModel.ChildModel
	if err := h.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		First(&child).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "원아를 찾을 수 없습니다.")
		}
		log.Printf("[children:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 저장 중 문제가 발생했습니다.")
	}

	if req.Name != nil {
		child.ChildName = strings.TrimSpace(*req.Name)
	}
	if req.Status != nil {
		child.ChildStatus = *req.Status
	}
	if req.ClassroomID != nil {
		if *req.ClassroomID == "" {
			child.ChildClassroomID = nil
		} else {
			classroomID, err := uuid.Parse(*req.ClassroomID)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
			}
			if err := h.ensureClassroom(c, classroomID); err != nil {
				return err
			}
			child.ChildClassroomID = &classroomID
		}
	}

	if err := h.DB.WithContext(ctx).Save(&child).Error; err != nil {
		log.Printf("[children:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonUpdated(c, "원아 정보가 수정되었습니다.", child)
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/children/:id
func (h *ChildController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	// link rows first, then the child row
	if err := h.DB.WithContext(ctx).
		Where("child_parent_child_id = ?", childID).
		Delete(&classModel.ChildParentModel{}).Error; err != nil {
		log.Printf("[children:delete] links: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 삭제 중 문제가 발생했습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Delete(&classModel.ChildModel{})
	if res.Error != nil {
		log.Printf("[children:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "원아 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "원아를 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "원아가 삭제되었습니다.", fiber.Map{"child_id": childID})
}

// ===================== ADMIN LINK PARENT =====================
// POST /admin/children/:id/parents
func (h *ChildController) LinkParent(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req classDTO.LinkParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}
	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "parent_id가 올바르지 않습니다.")
	}

	var child classModel.ChildModel
	if err := h.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		First(&child).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "원아를 찾을 수 없습니다.")
		}
		log.Printf("[children:link] child: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "보호자 연결 중 문제가 발생했습니다.")
	}

	var parent authModel.UserModel
	if err := h.DB.WithContext(ctx).
		Where("user_id = ? AND user_role = ?", parentID, constants.RoleParent).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "보호자 계정을 찾을 수 없습니다.")
		}
		log.Printf("[children:link] parent: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "보호자 연결 중 문제가 발생했습니다.")
	}

	var existing classModel.ChildParentModel
	err = h.DB.WithContext(ctx).
		Where("child_parent_child_id = ? AND child_parent_parent_id = ?", childID, parentID).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "이미 연결된 보호자입니다.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[children:link] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "보호자 연결 중 문제가 발생했습니다.")
	}

	link := classModel.ChildParentModel{
		ChildParentChildID:  childID,
		ChildParentParentID: parentID,
	}
	if err := h.DB.WithContext(ctx).Create(&link).Error; err != nil {
		log.Printf("[children:link] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "보호자 연결 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "보호자가 연결되었습니다.", link)
}

// ===================== ADMIN UNLINK PARENT =====================
// DELETE /admin/children/:id/parents/:parentId
func (h *ChildController) UnlinkParent(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}
	parentID, err := uuid.Parse(c.Params("parentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("child_parent_child_id = ? AND child_parent_parent_id = ?", childID, parentID).
		Delete(&classModel.ChildParentModel{})
	if res.Error != nil {
		log.Printf("[children:unlink] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "보호자 연결 해제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "연결 정보를 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "보호자 연결이 해제되었습니다.", fiber.Map{
		"child_id":  childID,
		"parent_id": parentID,
	})
}

func (h *ChildController) ensureClassroom(c *fiber.Ctx, classroomID uuid.UUID) error {
	var classroom classModel.ClassroomModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("classroom_id = ?", classroomID).
		First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
		}
		log.Printf("[children] classroom lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "처리 중 문제가 발생했습니다.")
	}
	return nil
}
