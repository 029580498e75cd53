package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classPostDTO "sinchonkinder_backend/internals/features/school/class_posts/dto"
	classPostModel "sinchonkinder_backend/internals/features/school/class_posts/model"
	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type ClassPostController struct{ DB *gorm.DB }

func NewClassPostController(db *gorm.DB) *ClassPostController { return &ClassPostController{DB: db} }

var validateClassPost = validator.New()

const classPostSelect = `
SELECT
  p.class_post_id,
  p.class_post_classroom_id,
  p.class_post_title,
  p.class_post_summary,
  p.class_post_content,
  p.class_post_publish_at,
  p.class_post_created_at,
  p.class_post_updated_at,
  cr.classroom_name,
  COALESCE(
    json_agg(
      json_build_object(
        'id', a.class_post_attachment_id,
        'label', a.class_post_attachment_label,
        'file_url', a.class_post_attachment_file_url
      ) ORDER BY a.class_post_attachment_created_at
    ) FILTER (WHERE a.class_post_attachment_id IS NOT NULL),
    '[]'
  ) AS attachments
FROM class_posts p
JOIN classrooms cr ON cr.classroom_id = p.class_post_classroom_id
LEFT JOIN class_post_attachments a ON a.class_post_attachment_post_id = p.class_post_id
`

const classPostGroupBy = " GROUP BY p.class_post_id, cr.classroom_name "

type classPostRow struct {
	ClassPostID          uuid.UUID `gorm:"column:class_post_id"`
	ClassPostClassroomID uuid.UUID `gorm:"column:class_post_classroom_id"`
	ClassPostTitle       string    `gorm:"column:class_post_title"`
	ClassPostSummary     *string   `gorm:"column:class_post_summary"`
	ClassPostContent     []byte    `gorm:"column:class_post_content"`
	ClassPostPublishAt   time.Time `gorm:"column:class_post_publish_at"`
	ClassPostCreatedAt   time.Time `gorm:"column:class_post_created_at"`
	ClassPostUpdatedAt   time.Time `gorm:"column:class_post_updated_at"`
	ClassroomName        *string   `gorm:"column:classroom_name"`
	Attachments          []byte    `gorm:"column:attachments"`
}

func classPostRowToResponse(r classPostRow) classPostDTO.ClassPostResponse {
	return classPostDTO.ClassPostResponse{
		ClassPostID:   r.ClassPostID,
		ClassroomID:   r.ClassPostClassroomID,
		ClassroomName: r.ClassroomName,
		Title:         r.ClassPostTitle,
		Summary:       r.ClassPostSummary,
		Content:       helper.FallbackContent(helper.NormalizeContent(r.ClassPostContent)),
		PublishAt:     r.ClassPostPublishAt,
		Attachments:   helper.NormalizeAttachments(r.Attachments),
		CreatedAt:     r.ClassPostCreatedAt,
		UpdatedAt:     r.ClassPostUpdatedAt,
	}
}

// ===================== PARENT LIST =====================
// GET /parents/posts — only classrooms of the parent's linked children.
func (h *ClassPostController) ParentList(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "publish_at", "desc", helper.DefaultOpts)

	scope := `
  p.class_post_classroom_id IN (
    SELECT ch.child_classroom_id
    FROM child_parents cp
    JOIN children ch ON ch.child_id = cp.child_parent_child_id
    WHERE cp.child_parent_parent_id = ?
      AND ch.child_classroom_id IS NOT NULL
  )
  AND p.class_post_publish_at <= NOW()`

	var total int64
	if err := h.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM class_posts p WHERE "+scope, parentID).
		Scan(&total).Error; err != nil {
		log.Printf("[class-posts:parent-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}

	var rows []classPostRow
	query := classPostSelect + "WHERE " + scope + classPostGroupBy +
		"ORDER BY p.class_post_publish_at DESC LIMIT ? OFFSET ?"
	if err := h.DB.WithContext(ctx).
		Raw(query, parentID, p.Limit(), p.Offset()).
		Scan(&rows).Error; err != nil {
		log.Printf("[class-posts:parent-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}

	items := make([]classPostDTO.ClassPostResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, classPostRowToResponse(r))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== PARENT DETAIL =====================
// GET /parents/posts/:id — the child link is re-checked here, not assumed
// from the list response.
func (h *ClassPostController) ParentGetByID(c *fiber.Ctx) error {
	parentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ctx := c.UserContext()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var rows []classPostRow
	query := classPostSelect + `
WHERE p.class_post_id = ?
  AND p.class_post_publish_at <= NOW()
  AND p.class_post_classroom_id IN (
    SELECT ch.child_classroom_id
    FROM child_parents cp
    JOIN children ch ON ch.child_id = cp.child_parent_child_id
    WHERE cp.child_parent_parent_id = ?
      AND ch.child_classroom_id IS NOT NULL
  )` + classPostGroupBy
	if err := h.DB.WithContext(ctx).
		Raw(query, postID, parentID).
		Scan(&rows).Error; err != nil {
		log.Printf("[class-posts:parent-detail] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
	}
	return helper.JsonOK(c, "", classPostRowToResponse(rows[0]))
}

// ===================== ADMIN LIST =====================
// GET /admin/class-posts?classroom_id=
func (h *ClassPostController) AdminList(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "publish_at", "desc", helper.AdminOpts)

	where := make([]string, 0, 1)
	args := make([]any, 0, 1)
	if raw := strings.TrimSpace(c.Query("classroom_id")); raw != "" {
		classroomID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		where = append(where, "p.class_post_classroom_id = ?")
		args = append(args, classroomID)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := h.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM class_posts p "+whereSQL, args...).
		Scan(&total).Error; err != nil {
		log.Printf("[class-posts:admin-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"publish_at": "p.class_post_publish_at",
		"created_at": "p.class_post_created_at",
		"title":      "p.class_post_title",
	}, "publish_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}

	var rows []classPostRow
	query := classPostSelect + whereSQL + classPostGroupBy + order + " LIMIT ? OFFSET ?"
	if err := h.DB.WithContext(ctx).
		Raw(query, append(args, p.Limit(), p.Offset())...).
		Scan(&rows).Error; err != nil {
		log.Printf("[class-posts:admin-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "학급 소식을 불러오지 못했습니다.")
	}

	items := make([]classPostDTO.ClassPostResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, classPostRowToResponse(r))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== ADMIN CREATE =====================
// POST /admin/class-posts
func (h *ClassPostController) Create(c *fiber.Ctx) error {
	adminID, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req classPostDTO.CreateClassPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassPost.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	classroomID, err := uuid.Parse(req.ClassroomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
	}
	var classroom classroomModel.ClassroomModel
	if err := h.DB.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
		}
		log.Printf("[class-posts:create] classroom: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	content, err := encodeClassPostParagraphs(helper.MarkdownToParagraphs(req.Content))
	if err != nil {
		log.Printf("[class-posts:create] content: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	post := classPostModel.ClassPostModel{
		ClassPostClassroomID: classroomID,
		ClassPostTitle:       strings.TrimSpace(req.Title),
		ClassPostSummary:     req.Summary,
		ClassPostContent:     content,
		ClassPostPublishAt:   time.Now(),
		ClassPostAuthorID:    &adminID,
	}
	if req.PublishAt != nil {
		post.ClassPostPublishAt = *req.PublishAt
	}

	if err := h.DB.WithContext(ctx).Create(&post).Error; err != nil {
		log.Printf("[class-posts:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	// 첨부 저장 실패는 호출자에게 저장 오류로 알린다 (글 행은 남는다).
	if err := h.replaceAttachments(ctx, post.ClassPostID, req.Attachments, false); err != nil {
		log.Printf("[class-posts:create] attachments: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	return helper.JsonCreated(c, "게시글이 등록되었습니다.", h.loadOne(ctx, post.ClassPostID))
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/class-posts/:id
func (h *ClassPostController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req classPostDTO.UpdateClassPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateClassPost.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}
	if req.Attachments != nil && len(*req.Attachments) > 5 {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", []string{"첨부파일은 최대 5개까지 등록할 수 있습니다."})
	}

	var post classPostModel.ClassPostModel
	if err := h.DB.WithContext(ctx).
		Where("class_post_id = ?", postID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
		}
		log.Printf("[class-posts:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	if req.ClassroomID != nil {
		classroomID, err := uuid.Parse(*req.ClassroomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id가 올바르지 않습니다.")
		}
		var classroom classroomModel.ClassroomModel
		if err := h.DB.WithContext(ctx).
			Where("classroom_id = ?", classroomID).
			First(&classroom).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "반을 찾을 수 없습니다.")
			}
			log.Printf("[class-posts:update] classroom: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
		}
		post.ClassPostClassroomID = classroomID
	}
	if req.Title != nil {
		post.ClassPostTitle = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		post.ClassPostSummary = req.Summary
	}
	if req.Content != nil {
		content, err := encodeClassPostParagraphs(helper.MarkdownToParagraphs(*req.Content))
		if err != nil {
			log.Printf("[class-posts:update] content: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
		}
		post.ClassPostContent = content
	}
	if req.PublishAt != nil {
		post.ClassPostPublishAt = *req.PublishAt
	}

	if err := h.DB.WithContext(ctx).Save(&post).Error; err != nil {
		log.Printf("[class-posts:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	if req.Attachments != nil {
		if err := h.replaceAttachments(ctx, post.ClassPostID, *req.Attachments, true); err != nil {
			log.Printf("[class-posts:update] attachments: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
		}
	}

	return helper.JsonUpdated(c, "게시글이 수정되었습니다.", h.loadOne(ctx, post.ClassPostID))
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/class-posts/:id
func (h *ClassPostController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("class_post_id = ?", postID).
		Delete(&classPostModel.ClassPostModel{})
	if res.Error != nil {
		log.Printf("[class-posts:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "게시글이 삭제되었습니다.", fiber.Map{"class_post_id": postID})
}

/* ===================== INTERNAL ===================== */

func encodeClassPostParagraphs(paragraphs []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(paragraphs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (h *ClassPostController) replaceAttachments(ctx context.Context, postID uuid.UUID, inputs []classPostDTO.AttachmentInput, wipe bool) error {
	if wipe {
		if err := h.DB.WithContext(ctx).
			Where("class_post_attachment_post_id = ?", postID).
			Delete(&classPostModel.ClassPostAttachmentModel{}).Error; err != nil {
			return err
		}
	}
	for _, in := range inputs {
		fileURL := strings.TrimSpace(in.FileURL)
		if fileURL == "" {
			continue
		}
		att := classPostModel.ClassPostAttachmentModel{
			ClassPostAttachmentPostID:  postID,
			ClassPostAttachmentFileURL: fileURL,
			ClassPostAttachmentLabel:   in.Label,
		}
		if err := h.DB.WithContext(ctx).Create(&att).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *ClassPostController) loadOne(ctx context.Context, postID uuid.UUID) *classPostDTO.ClassPostResponse {
	var rows []classPostRow
	query := classPostSelect + "WHERE p.class_post_id = ?" + classPostGroupBy
	if err := h.DB.WithContext(ctx).Raw(query, postID).Scan(&rows).Error; err != nil || len(rows) == 0 {
		return nil
	}
	resp := classPostRowToResponse(rows[0])
	return &resp
}
