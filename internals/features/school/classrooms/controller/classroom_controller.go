package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sinchonkinder_backend/internals/features/school/classrooms/dto"
	classModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type ClassroomController struct{ DB *gorm.DB }

func NewClassroomController(db *gorm.DB) *ClassroomController { return &ClassroomController{DB: db} }

var validateClassroom = validator.New()

// ===================== ADMIN LIST =====================
// GET /admin/classrooms
func (h *ClassroomController) List(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var classrooms []classModel.ClassroomModel
	if err := h.DB.WithContext(ctx).
		Order("classroom_name ASC").
		Find(&classrooms).Error; err != nil {
		log.Printf("[classrooms:list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 목록을 불러오지 못했습니다.")
	}

	// child counts in one grouped query, keyed back by classroom id
	type countRow struct {
		ChildClassroomID uuid.UUID `gorm:"column:child_classroom_id"`
		Cnt              int64     `gorm:"column:cnt"`
	}
	var counts []countRow
	if err := h.DB.WithContext(ctx).
		Raw(`SELECT child_classroom_id, COUNT(*) AS cnt
		     FROM children
		     WHERE child_classroom_id IS NOT NULL
		     GROUP BY child_classroom_id`).
		Scan(&counts).Error; err != nil {
		log.Printf("[classrooms:list] counts: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 목록을 불러오지 못했습니다.")
	}
	countByID := make(map[uuid.UUID]int64, len(counts))
	for _, r := range counts {
		countByID[r.ChildClassroomID] = r.Cnt
	}

	items := make([]classDTO.ClassroomResponse, 0, len(classrooms))
	for _, cr := range classrooms {
		items = append(items, classDTO.ClassroomResponse{
			ClassroomID:      cr.ClassroomID,
			Name:             cr.ClassroomName,
			Description:      cr.ClassroomDescription,
			AgeRange:         cr.ClassroomAgeRange,
			LeadTeacher:      cr.ClassroomLeadTeacher,
			AssistantTeacher: cr.ClassroomAssistantTeacher,
			ChildCount:       countByID[cr.ClassroomID],
			CreatedAt:        cr.ClassroomCreatedAt,
		})
	}
	return helper.JsonOK(c, "", items)
}

// ===================== ADMIN CREATE =====================
// POST /admin/classrooms
func (h *ClassroomController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req classDTO.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	classroom := classModel.ClassroomModel{
		ClassroomName:             strings.TrimSpace(req.Name),
		ClassroomDescription:      req.Description,
		ClassroomAgeRange:         req.AgeRange,
		ClassroomLeadTeacher:      req.LeadTeacher,
		ClassroomAssistantTeacher: req.AssistantTeacher,
	}
	if err := h.DB.WithContext(ctx).Create(&classroom).Error; err != nil {
		log.Printf("[classrooms:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "반이 등록되었습니다.", classroom)
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/classrooms/:id
func (h *ClassroomController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	classroomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req classDTO.UpdateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	var classroom classModel.ClassroomModel
	if err := h.DB.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
		}
		log.Printf("[classrooms:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 저장 중 문제가 발생했습니다.")
	}

	if req.Name != nil {
		classroom.ClassroomName = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		classroom.ClassroomDescription = req.Description
	}
	if req.AgeRange != nil {
		classroom.ClassroomAgeRange = req.AgeRange
	}
	if req.LeadTeacher != nil {
		classroom.ClassroomLeadTeacher = req.LeadTeacher
	}
	if req.AssistantTeacher != nil {
		classroom.ClassroomAssistantTeacher = req.AssistantTeacher
	}

	if err := h.DB.WithContext(ctx).Save(&classroom).Error; err != nil {
		log.Printf("[classrooms:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonUpdated(c, "반 정보가 수정되었습니다.", classroom)
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/classrooms/:id — children keep their rows, classroom unset.
func (h *ClassroomController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	classroomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Delete(&classModel.ClassroomModel{})
	if res.Error != nil {
		log.Printf("[classrooms:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "반 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "반이 삭제되었습니다.", fiber.Map{"classroom_id": classroomID})
}
