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

	"sinchonkinder_backend/internals/constants"
	inquiryDTO "sinchonkinder_backend/internals/features/parents/inquiries/dto"
	inquiryModel "sinchonkinder_backend/internals/features/parents/inquiries/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type InquiryController struct{ DB *gorm.DB }

func NewInquiryController(db *gorm.DB) *InquiryController { return &InquiryController{DB: db} }

var validateInquiry = validator.New()

func inquiryToResponse(m inquiryModel.ParentInquiryModel) inquiryDTO.InquiryResponse {
	return inquiryDTO.InquiryResponse{
		ParentInquiryID: m.ParentInquiryID,
		Category:        m.ParentInquiryCategory,
		Subject:         m.ParentInquirySubject,
		Message:         m.ParentInquiryMessage,
		Status:          m.ParentInquiryStatus,
		AdminReply:      m.ParentInquiryAdminReply,
		RepliedAt:       m.ParentInquiryRepliedAt,
		CreatedAt:       m.ParentInquiryCreatedAt,
	}
}

// ===================== PARENT SUBMIT =====================
// POST /parents/inquiries
func (h *InquiryController) Create(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	var req inquiryDTO.CreateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateInquiry.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	category := "general"
	if req.Category != nil && *req.Category != "" {
		category = *req.Category
	}

	inquiry := inquiryModel.ParentInquiryModel{
		ParentInquiryParentID: parentID,
		ParentInquiryCategory: category,
		ParentInquirySubject:  strings.TrimSpace(req.Subject),
		ParentInquiryMessage:  strings.TrimSpace(req.Message),
		ParentInquiryStatus:   constants.InquiryReceived,
	}
	if err := h.DB.WithContext(ctx).Create(&inquiry).Error; err != nil {
		log.Printf("[inquiries:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 접수 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "문의가 접수되었습니다.", inquiryToResponse(inquiry))
}

// ===================== PARENT LIST =====================
// GET /parents/inquiries — own inquiries only.
func (h *InquiryController) ParentList(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	base := h.DB.WithContext(ctx).
		Model(&inquiryModel.ParentInquiryModel{}).
		Where("parent_inquiry_parent_id = ?", parentID)
	if status := c.Query("status"); status != "" {
		base = base.Where("parent_inquiry_status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		log.Printf("[inquiries:parent-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 내역을 불러오지 못했습니다.")
	}

	var inquiries []inquiryModel.ParentInquiryModel
	if err := base.Session(&gorm.Session{}).
		Order("parent_inquiry_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&inquiries).Error; err != nil {
		log.Printf("[inquiries:parent-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 내역을 불러오지 못했습니다.")
	}

	items := make([]inquiryDTO.InquiryResponse, 0, len(inquiries))
	for _, m := range inquiries {
		items = append(items, inquiryToResponse(m))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== PARENT SUMMARY =====================
// GET /parents/inquiries/summary — counts per status.
func (h *InquiryController) ParentSummary(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	type statusCount struct {
		Status string `gorm:"column:parent_inquiry_status"`
		Cnt    int64  `gorm:"column:cnt"`
	}
	var counts []statusCount
	if err := h.DB.WithContext(ctx).
		Raw(`SELECT parent_inquiry_status, COUNT(*) AS cnt
		     FROM parent_inquiries
		     WHERE parent_inquiry_parent_id = ?
		     GROUP BY parent_inquiry_status`, parentID).
		Scan(&counts).Error; err != nil {
		log.Printf("[inquiries:summary] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 현황을 불러오지 못했습니다.")
	}

	var summary inquiryDTO.InquirySummaryResponse
	for _, r := range counts {
		switch r.Status {
		case constants.InquiryReceived:
			summary.Received = r.Cnt
		case constants.InquiryInReview:
			summary.InReview = r.Cnt
		case constants.InquiryCompleted:
			summary.Completed = r.Cnt
		}
		summary.Total += r.Cnt
	}
	return helper.JsonOK(c, "", summary)
}

// ===================== ADMIN LIST =====================
// GET /admin/parent-inquiries?status=
func (h *InquiryController) AdminList(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	where := "1=1"
	args := []any{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		where += " AND i.parent_inquiry_status = ?"
		args = append(args, status)
	}

	var total int64
	if err := h.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM parent_inquiries i WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		log.Printf("[inquiries:admin-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 목록을 불러오지 못했습니다.")
	}

	type adminInquiryRow struct {
		inquiryModel.ParentInquiryModel
		UserName  *string `gorm:"column:user_name"`
		UserEmail string  `gorm:"column:user_email"`
	}
	var rows []adminInquiryRow
	query := `
SELECT i.*, u.user_name, u.user_email
FROM parent_inquiries i
JOIN users u ON u.user_id = i.parent_inquiry_parent_id
WHERE ` + where + `
ORDER BY i.parent_inquiry_created_at DESC
LIMIT ? OFFSET ?`
	if err := h.DB.WithContext(ctx).
		Raw(query, append(args, p.Limit(), p.Offset())...).
		Scan(&rows).Error; err != nil {
		log.Printf("[inquiries:admin-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 목록을 불러오지 못했습니다.")
	}

	items := make([]inquiryDTO.AdminInquiryResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, inquiryDTO.AdminInquiryResponse{
			InquiryResponse: inquiryToResponse(r.ParentInquiryModel),
			ParentID:        r.ParentInquiryParentID,
			ParentName:      r.UserName,
			ParentEmail:     r.UserEmail,
		})
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== ADMIN UPDATE =====================
// PATCH /admin/parent-inquiries/:id — status and/or reply. Writing a reply
// stamps replied_at in the same update.
func (h *InquiryController) AdminUpdate(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	inquiryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req inquiryDTO.UpdateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateInquiry.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}
	if req.Status == nil && req.AdminReply == nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", []string{"변경할 항목이 없습니다."})
	}

	var inquiry inquiryModel.ParentInquiryModel
	if err := h.DB.WithContext(ctx).
		Where("parent_inquiry_id = ?", inquiryID).
		First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "문의를 찾을 수 없습니다.")
		}
		log.Printf("[inquiries:admin-update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 처리 중 문제가 발생했습니다.")
	}

	if req.Status != nil {
		inquiry.ParentInquiryStatus = *req.Status
	}
	if req.AdminReply != nil {
		now := time.Now()
		inquiry.ParentInquiryAdminReply = req.AdminReply
		inquiry.ParentInquiryRepliedAt = &now
	}

	if err := h.DB.WithContext(ctx).Save(&inquiry).Error; err != nil {
		log.Printf("[inquiries:admin-update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "문의 처리 중 문제가 발생했습니다.")
	}
	return helper.JsonUpdated(c, "문의가 처리되었습니다.", inquiryToResponse(inquiry))
}
