package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduleDTO "sinchonkinder_backend/internals/features/school/class_schedules/dto"
	scheduleModel "sinchonkinder_backend/internals/features/school/class_schedules/model"
	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type ClassScheduleController struct{ DB *gorm.DB }

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{DB: db}
}

var validateSchedule = validator.New()

const dateLayout = "2006-01-02"

type scheduleRow struct {
	ClassScheduleID          uuid.UUID  `gorm:"column:class_schedule_id"`
	ClassScheduleClassroomID *uuid.UUID `gorm:"column:class_schedule_classroom_id"`
	ClassScheduleTitle       string     `gorm:"column:class_schedule_title"`
	ClassScheduleDescription *string    `gorm:"column:class_schedule_description"`
	ClassScheduleLocation    *string    `gorm:"column:class_schedule_location"`
	ClassScheduleStartDate   time.Time  `gorm:"column:class_schedule_start_date"`
	ClassScheduleEndDate     *time.Time `gorm:"column:class_schedule_end_date"`
	ClassScheduleCreatedAt   time.Time  `gorm:"column:class_schedule_created_at"`
	ClassroomName            *string    `gorm:"column:classroom_name"`
}

func scheduleRowToResponse(r scheduleRow) scheduleDTO.ClassScheduleResponse {
	return scheduleDTO.ClassScheduleResponse{
		ClassScheduleID: r.ClassScheduleID,
		ClassroomID:     r.ClassScheduleClassroomID,
		ClassroomName:   r.ClassroomName,
		Title:           r.ClassScheduleTitle,
		Description:     r.ClassScheduleDescription,
		Location:        r.ClassScheduleLocation,
		StartDate:       r.ClassScheduleStartDate,
		EndDate:         r.ClassScheduleEndDate,
		CreatedAt:       r.ClassScheduleCreatedAt,
	}
}

// parseDateRange reads ?from=&?to= (YYYY-MM-DD); zero values mean unbounded.
func parseDateRange(c *fiber.Ctx) (from, to time.Time, err error) {
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err = time.Parse(dateLayout, raw)
		if err != nil {
			return
		}
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err = time.Parse(dateLayout, raw)
		if err != nil {
			return
		}
	}
	return
}

// ===================== PARENT LIST =====================
// GET /parents/schedule — schedules for the classrooms of linked children
// plus kindergarten-wide rows (classroom IS NULL). DISTINCT: two children in
// the same classroom must not duplicate a row.
func (h *ClassScheduleController) ParentList(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	from, to, err := parseDateRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)")
	}

	query := `
SELECT DISTINCT
  s.class_schedule_id,
  s.class_schedule_classroom_id,
  s.class_schedule_title,
  s.class_schedule_description,
  s.class_schedule_location,
  s.class_schedule_start_date,
  s.class_schedule_end_date,
  s.class_schedule_created_at,
  cr.classroom_name
FROM class_schedules s
LEFT JOIN classrooms cr ON cr.classroom_id = s.class_schedule_classroom_id
WHERE (
  s.class_schedule_classroom_id IS NULL
  OR s.class_schedule_classroom_id IN (
    SELECT ch.child_classroom_id
    FROM child_parents cp
    JOIN children ch ON ch.child_id = cp.child_parent_child_id
    WHERE cp.child_parent_parent_id = ?
      AND ch.child_classroom_id IS NOT NULL
  )
)`
	args := []any{parentID}
	if !from.IsZero() {
		query += " AND s.class_schedule_start_date >= ?"
		args = append(args, from)
	}
	if !to.IsZero() {
		query += " AND s.class_schedule_start_date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY s.class_schedule_start_date ASC"

	var rows []scheduleRow
	if err := h.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		log.Printf("[schedules:parent-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정을 불러오지 못했습니다.")
	}

	items := make([]scheduleDTO.ClassScheduleResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, scheduleRowToResponse(r))
	}
	return helper.JsonOK(c, "", items)
}

// ===================== ADMIN LIST =====================
// GET /admin/class-schedules?classroom_id=&from=&to=
func (h *ClassScheduleController) AdminList(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	from, to, err := parseDateRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)")
	}

	query := h.DB.WithContext(ctx).
		Table("class_schedules s").
		Select(`s.class_schedule_id, s.class_schedule_classroom_id, s.class_schedule_title,
		        s.class_schedule_description, s.class_schedule_location,
		        s.class_schedule_start_date, s.class_schedule_end_date,
		        s.class_schedule_created_at, cr.classroom_name`).
		Joins("LEFT JOIN classrooms cr ON cr.classroom_id = s.class_schedule_classroom_id").
		Order("s.class_schedule_start_date ASC")

	if raw := strings.TrimSpace(c.Query("classroom_id")); raw != "" {
		classroomID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		query = query.Where("s.class_schedule_classroom_id = ?", classroomID)
	}
	if !from.IsZero() {
		query = query.Where("s.class_schedule_start_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("s.class_schedule_start_date <= ?", to)
	}

	var rows []scheduleRow
	if err := query.Scan(&rows).Error; err != nil {
		log.Printf("[schedules:admin-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정을 불러오지 못했습니다.")
	}

	items := make([]scheduleDTO.ClassScheduleResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, scheduleRowToResponse(r))
	}
	return helper.JsonOK(c, "", items)
}

// ===================== ADMIN CREATE =====================
// POST /admin/class-schedules
func (h *ClassScheduleController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req scheduleDTO.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateSchedule.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	schedule := scheduleModel.ClassScheduleModel{
		ClassScheduleTitle:       strings.TrimSpace(req.Title),
		ClassScheduleDescription: req.Description,
		ClassScheduleLocation:    req.Location,
		ClassScheduleStartDate:   startDate,
	}
	if req.EndDate != nil {
		endDate, _ := time.Parse(dateLayout, *req.EndDate)
		if endDate.Before(startDate) {
			return helper.JsonValidationError(c, "입력값을 확인해 주세요.", []string{"종료일은 시작일보다 빠를 수 없습니다."})
		}
		schedule.ClassScheduleEndDate = &endDate
	}
	if req.ClassroomID != nil {
		classroomID, err := uuid.Parse(*req.ClassroomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		if err := h.ensureClassroom(c, classroomID); err != nil {
			return err
		}
		schedule.ClassScheduleClassroomID = &classroomID
	}

	if err := h.DB.WithContext(ctx).Create(&schedule).Error; err != nil {
		log.Printf("[schedules:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "일정이 등록되었습니다.", schedule)
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/class-schedules/:id
func (h *ClassScheduleController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req scheduleDTO.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateSchedule.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	var schedule scheduleModel.ClassScheduleModel
	if err := h.DB.WithContext(ctx).
		Where("class_schedule_id = ?", scheduleID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "일정을 찾을 수 없습니다.")
		}
		log.Printf("[schedules:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정 저장 중 문제가 발생했습니다.")
	}

	if req.Title != nil {
		schedule.ClassScheduleTitle = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		schedule.ClassScheduleDescription = req.Description
	}
	if req.Location != nil {
		schedule.ClassScheduleLocation = req.Location
	}
	if req.StartDate != nil {
		startDate, _ := time.Parse(dateLayout, *req.StartDate)
		schedule.ClassScheduleStartDate = startDate
	}
	if req.EndDate != nil {
		endDate, _ := time.Parse(dateLayout, *req.EndDate)
		schedule.ClassScheduleEndDate = &endDate
	}
	if schedule.ClassScheduleEndDate != nil &&
		schedule.ClassScheduleEndDate.Before(schedule.ClassScheduleStartDate) {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", []string{"종료일은 시작일보다 빠를 수 없습니다."})
	}
	if req.ClearClassroom {
		schedule.ClassScheduleClassroomID = nil
	} else if req.ClassroomID != nil {
		classroomID, err := uuid.Parse(*req.ClassroomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		if err := h.ensureClassroom(c, classroomID); err != nil {
			return err
		}
		schedule.ClassScheduleClassroomID = &classroomID
	}

	if err := h.DB.WithContext(ctx).Save(&schedule).Error; err != nil {
		log.Printf("[schedules:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonUpdated(c, "일정이 수정되었습니다.", schedule)
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/class-schedules/:id
func (h *ClassScheduleController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("class_schedule_id = ?", scheduleID).
		Delete(&scheduleModel.ClassScheduleModel{})
	if res.Error != nil {
		log.Printf("[schedules:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "일정 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "일정을 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "일정이 삭제되었습니다.", fiber.Map{"class_schedule_id": scheduleID})
}

func (h *ClassScheduleController) ensureClassroom(c *fiber.Ctx, classroomID uuid.UUID) error {
	var classroom classroomModel.ClassroomModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("classroom_id = ?", classroomID).
		First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
		}
		log.Printf("[schedules] classroom lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "처리 중 문제가 발생했습니다.")
	}
	return nil
}
