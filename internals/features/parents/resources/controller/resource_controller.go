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
	resourceDTO "sinchonkinder_backend/internals/features/parents/resources/dto"
	resourceModel "sinchonkinder_backend/internals/features/parents/resources/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type ResourceController struct{ DB *gorm.DB }

func NewResourceController(db *gorm.DB) *ResourceController { return &ResourceController{DB: db} }

var validateResource = validator.New()

func resourceToResponse(m resourceModel.ParentResourceModel) resourceDTO.ResourceResponse {
	return resourceDTO.ResourceResponse{
		ParentResourceID: m.ParentResourceID,
		Title:            m.ParentResourceTitle,
		Description:      m.ParentResourceDescription,
		Category:         m.ParentResourceCategory,
		Type:             m.ParentResourceType,
		FileURL:          m.ParentResourceFileURL,
		PublishedAt:      m.ParentResourcePublishedAt,
		CreatedAt:        m.ParentResourceCreatedAt,
	}
}

// ===================== PARENT OVERVIEW =====================
// GET /parents/resources — both types grouped, newest first.
func (h *ResourceController) ParentOverview(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	// an explicit ?type= narrows to a flat list of one type
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if t != constants.ResourceForm && t != constants.ResourceCommittee {
			return helper.JsonError(c, fiber.StatusBadRequest, "지원하지 않는 자료 유형입니다.")
		}
		var resources []resourceModel.ParentResourceModel
		if err := h.DB.WithContext(ctx).
			Where("parent_resource_type = ? AND parent_resource_published_at <= NOW()", t).
			Order("parent_resource_published_at DESC").
			Find(&resources).Error; err != nil {
			log.Printf("[resources:parent] select: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "자료를 불러오지 못했습니다.")
		}
		items := make([]resourceDTO.ResourceResponse, 0, len(resources))
		for _, m := range resources {
			items = append(items, resourceToResponse(m))
		}
		return helper.JsonOK(c, "", items)
	}

	var resources []resourceModel.ParentResourceModel
	if err := h.DB.WithContext(ctx).
		Where("parent_resource_published_at <= NOW()").
		Order("parent_resource_published_at DESC").
		Find(&resources).Error; err != nil {
		log.Printf("[resources:parent] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료를 불러오지 못했습니다.")
	}

	overview := resourceDTO.ResourceOverviewResponse{
		Forms:     []resourceDTO.ResourceResponse{},
		Committee: []resourceDTO.ResourceResponse{},
	}
	for _, m := range resources {
		switch m.ParentResourceType {
		case constants.ResourceForm:
			overview.Forms = append(overview.Forms, resourceToResponse(m))
		case constants.ResourceCommittee:
			overview.Committee = append(overview.Committee, resourceToResponse(m))
		}
	}
	return helper.JsonOK(c, "", overview)
}

// ===================== ADMIN LIST =====================
// GET /admin/parent-resources?type=
func (h *ResourceController) AdminList(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "published_at", "desc", helper.AdminOpts)

	base := h.DB.WithContext(ctx).Model(&resourceModel.ParentResourceModel{})
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		base = base.Where("parent_resource_type = ?", t)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		log.Printf("[resources:admin-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료를 불러오지 못했습니다.")
	}

	var resources []resourceModel.ParentResourceModel
	if err := base.Session(&gorm.Session{}).
		Order("parent_resource_published_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&resources).Error; err != nil {
		log.Printf("[resources:admin-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료를 불러오지 못했습니다.")
	}

	items := make([]resourceDTO.ResourceResponse, 0, len(resources))
	for _, m := range resources {
		items = append(items, resourceToResponse(m))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== ADMIN CREATE =====================
// POST /admin/parent-resources
func (h *ResourceController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req resourceDTO.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateResource.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	resource := resourceModel.ParentResourceModel{
		ParentResourceTitle:       strings.TrimSpace(req.Title),
		ParentResourceDescription: req.Description,
		ParentResourceCategory:    req.Category,
		ParentResourceType:        req.Type,
		ParentResourceFileURL:     strings.TrimSpace(req.FileURL),
		ParentResourcePublishedAt: time.Now(),
	}
	if req.PublishedAt != nil {
		resource.ParentResourcePublishedAt = *req.PublishedAt
	}

	if err := h.DB.WithContext(ctx).Create(&resource).Error; err != nil {
		log.Printf("[resources:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonCreated(c, "자료가 등록되었습니다.", resourceToResponse(resource))
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/parent-resources/:id
func (h *ResourceController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req resourceDTO.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateResource.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	var resource resourceModel.ParentResourceModel
	if err := h.DB.WithContext(ctx).
		Where("parent_resource_id = ?", resourceID).
		First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "자료를 찾을 수 없습니다.")
		}
		log.Printf("[resources:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료 저장 중 문제가 발생했습니다.")
	}

	if req.Title != nil {
		resource.ParentResourceTitle = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		resource.ParentResourceDescription = req.Description
	}
	if req.Category != nil {
		resource.ParentResourceCategory = req.Category
	}
	if req.Type != nil {
		resource.ParentResourceType = *req.Type
	}
	if req.FileURL != nil {
		resource.ParentResourceFileURL = strings.TrimSpace(*req.FileURL)
	}
	if req.PublishedAt != nil {
		resource.ParentResourcePublishedAt = *req.PublishedAt
	}

	if err := h.DB.WithContext(ctx).Save(&resource).Error; err != nil {
		log.Printf("[resources:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료 저장 중 문제가 발생했습니다.")
	}
	return helper.JsonUpdated(c, "자료가 수정되었습니다.", resourceToResponse(resource))
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/parent-resources/:id
func (h *ResourceController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("parent_resource_id = ?", resourceID).
		Delete(&resourceModel.ParentResourceModel{})
	if res.Error != nil {
		log.Printf("[resources:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "자료 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "자료를 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "자료가 삭제되었습니다.", fiber.Map{"parent_resource_id": resourceID})
}
