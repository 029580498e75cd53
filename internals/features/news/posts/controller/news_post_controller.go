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
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/constants"
	newsDTO "sinchonkinder_backend/internals/features/news/posts/dto"
	newsModel "sinchonkinder_backend/internals/features/news/posts/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

type NewsPostController struct{ DB *gorm.DB }

func NewNewsPostController(db *gorm.DB) *NewsPostController { return &NewsPostController{DB: db} }

var validateNews = validator.New()

// Attachments come back pre-aggregated so a list page is two queries total
// (count + rows) instead of one per post.
const newsSelect = `
SELECT
  p.news_post_id,
  p.news_post_slug,
  p.news_post_title,
  p.news_post_category,
  p.news_post_summary,
  p.news_post_content,
  p.news_post_hero_image_url,
  p.news_post_hero_image_alt,
  p.news_post_publish_at,
  p.news_post_is_highlighted,
  p.news_post_audience_scope,
  p.news_post_created_at,
  p.news_post_updated_at,
  COALESCE(
    json_agg(
      json_build_object(
        'id', a.news_attachment_id,
        'label', a.news_attachment_label,
        'file_url', a.news_attachment_file_url
      ) ORDER BY a.news_attachment_created_at
    ) FILTER (WHERE a.news_attachment_id IS NOT NULL),
    '[]'
  ) AS attachments
FROM news_posts p
LEFT JOIN news_attachments a ON a.news_attachment_post_id = p.news_post_id
`

type newsPostRow struct {
	NewsPostID            uuid.UUID `gorm:"column:news_post_id"`
	NewsPostSlug          string    `gorm:"column:news_post_slug"`
	NewsPostTitle         string    `gorm:"column:news_post_title"`
	NewsPostCategory      string    `gorm:"column:news_post_category"`
	NewsPostSummary       *string   `gorm:"column:news_post_summary"`
	NewsPostContent       []byte    `gorm:"column:news_post_content"`
	NewsPostHeroImageURL  *string   `gorm:"column:news_post_hero_image_url"`
	NewsPostHeroImageAlt  *string   `gorm:"column:news_post_hero_image_alt"`
	NewsPostPublishAt     time.Time `gorm:"column:news_post_publish_at"`
	NewsPostIsHighlighted bool      `gorm:"column:news_post_is_highlighted"`
	NewsPostAudienceScope string    `gorm:"column:news_post_audience_scope"`
	NewsPostCreatedAt     time.Time `gorm:"column:news_post_created_at"`
	NewsPostUpdatedAt     time.Time `gorm:"column:news_post_updated_at"`
	Attachments           []byte    `gorm:"column:attachments"`
}

func rowToResponse(r newsPostRow) newsDTO.NewsPostResponse {
	return newsDTO.NewsPostResponse{
		NewsPostID:    r.NewsPostID,
		Slug:          r.NewsPostSlug,
		Title:         r.NewsPostTitle,
		Category:      r.NewsPostCategory,
		Summary:       r.NewsPostSummary,
		Content:       helper.FallbackContent(helper.NormalizeContent(r.NewsPostContent)),
		HeroImageURL:  r.NewsPostHeroImageURL,
		HeroImageAlt:  r.NewsPostHeroImageAlt,
		PublishAt:     r.NewsPostPublishAt,
		IsHighlighted: r.NewsPostIsHighlighted,
		AudienceScope: r.NewsPostAudienceScope,
		Attachments:   helper.NormalizeAttachments(r.Attachments),
		CreatedAt:     r.NewsPostCreatedAt,
		UpdatedAt:     r.NewsPostUpdatedAt,
	}
}

// visibleScopes: everyone sees public posts; active parents and admins also
// see parents-scoped posts.
func visibleScopes(c *fiber.Ctx) []string {
	role := helperAuth.GetRoleFromToken(c)
	if role == constants.RoleAdmin {
		return []string{constants.ScopePublic, constants.ScopeParents}
	}
	if role == constants.RoleParent && helperAuth.GetStatusFromToken(c) == constants.StatusActive {
		return []string{constants.ScopePublic, constants.ScopeParents}
	}
	return []string{constants.ScopePublic}
}

// ===================== PUBLIC LIST =====================
// GET /news?category=&highlighted=
func (h *NewsPostController) List(c *fiber.Ctx) error {
	return h.list(c, strings.TrimSpace(c.Query("category")))
}

// ListCategory binds one of the fixed category paths (/news/announcements 등).
func (h *NewsPostController) ListCategory(category string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.list(c, category)
	}
}

func (h *NewsPostController) list(c *fiber.Ctx, category string) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "publish_at", "desc", helper.DefaultOpts)

	where := []string{
		"p.news_post_publish_at <= NOW()",
		"p.news_post_audience_scope = ANY(?)",
	}
	args := []any{pq.Array(visibleScopes(c))}

	if category != "" {
		if category != constants.CategoryAnnouncements &&
			category != constants.CategoryNewsletter &&
			category != constants.CategoryEvents {
			return helper.JsonError(c, fiber.StatusBadRequest, "지원하지 않는 카테고리입니다.")
		}
		where = append(where, "p.news_post_category = ?")
		args = append(args, category)
	}
	if c.Query("highlighted") == "true" {
		where = append(where, "p.news_post_is_highlighted = TRUE")
	}

	whereSQL := "WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := h.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM news_posts p "+whereSQL, args...).
		Scan(&total).Error; err != nil {
		log.Printf("[news:list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"publish_at": "p.news_post_publish_at",
		"title":      "p.news_post_title",
	}, "publish_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	var rows []newsPostRow
	query := newsSelect + whereSQL + " GROUP BY p.news_post_id " + order + " LIMIT ? OFFSET ?"
	if err := h.DB.WithContext(ctx).
		Raw(query, append(args, p.Limit(), p.Offset())...).
		Scan(&rows).Error; err != nil {
		log.Printf("[news:list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	items := make([]newsDTO.NewsPostResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowToResponse(r))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== PUBLIC DETAIL =====================
// GET /news/:slug
func (h *NewsPostController) GetBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var rows []newsPostRow
	query := newsSelect + `
WHERE LOWER(p.news_post_slug) = LOWER(?)
  AND p.news_post_publish_at <= NOW()
  AND p.news_post_audience_scope = ANY(?)
GROUP BY p.news_post_id`
	if err := h.DB.WithContext(ctx).
		Raw(query, slug, pq.Array(visibleScopes(c))).
		Scan(&rows).Error; err != nil {
		log.Printf("[news:detail] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
	}
	return helper.JsonOK(c, "", rowToResponse(rows[0]))
}

// ===================== ADMIN LIST =====================
// GET /admin/news — no publish/scope filtering, drafts included.
func (h *NewsPostController) AdminList(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "publish_at", "desc", helper.AdminOpts)

	where := make([]string, 0, 1)
	args := make([]any, 0, 1)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		where = append(where, "p.news_post_category = ?")
		args = append(args, category)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := h.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM news_posts p "+whereSQL, args...).
		Scan(&total).Error; err != nil {
		log.Printf("[news:admin-list] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"publish_at": "p.news_post_publish_at",
		"created_at": "p.news_post_created_at",
		"title":      "p.news_post_title",
	}, "publish_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	var rows []newsPostRow
	query := newsSelect + whereSQL + " GROUP BY p.news_post_id " + order + " LIMIT ? OFFSET ?"
	if err := h.DB.WithContext(ctx).
		Raw(query, append(args, p.Limit(), p.Offset())...).
		Scan(&rows).Error; err != nil {
		log.Printf("[news:admin-list] select: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "소식을 불러오지 못했습니다.")
	}

	items := make([]newsDTO.NewsPostResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowToResponse(r))
	}
	return helper.JsonList(c, "", items, helper.BuildMeta(total, p))
}

// ===================== ADMIN CREATE =====================
// POST /admin/news
func (h *NewsPostController) Create(c *fiber.Ctx) error {
	adminID, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	var req newsDTO.CreateNewsPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateNews.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	slugSource := req.Title
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slugSource = *req.Slug
	}
	base := helper.Slugify(slugSource, 160)
	slug, err := helper.EnsureUniqueSlugCI(ctx, h.DB, "news_posts", "news_post_slug", base, 160)
	if err != nil {
		log.Printf("[news:create] slug: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	content, err := encodeParagraphs(helper.MarkdownToParagraphs(req.Content))
	if err != nil {
		log.Printf("[news:create] content: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	post := newsModel.NewsPostModel{
		NewsPostSlug:          slug,
		NewsPostTitle:         strings.TrimSpace(req.Title),
		NewsPostCategory:      req.Category,
		NewsPostSummary:       req.Summary,
		NewsPostContent:       content,
		NewsPostHeroImageURL:  req.HeroImageURL,
		NewsPostHeroImageAlt:  req.HeroImageAlt,
		NewsPostPublishAt:     time.Now(),
		NewsPostAudienceScope: constants.ScopePublic,
		NewsPostCreatedBy:     &adminID,
	}
	if req.PublishAt != nil {
		post.NewsPostPublishAt = *req.PublishAt
	}
	if req.IsHighlighted != nil {
		post.NewsPostIsHighlighted = *req.IsHighlighted
	}
	if req.AudienceScope != nil {
		post.NewsPostAudienceScope = *req.AudienceScope
	}

	if err := h.DB.WithContext(ctx).Create(&post).Error; err != nil {
		log.Printf("[news:create] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	// 첨부는 본문 저장 후 순차 저장. 실패하면 글 행은 남지만 호출자에게는
	// 저장 오류로 알린다.
	if err := h.replaceAttachments(ctx, post.NewsPostID, req.Attachments, false); err != nil {
		log.Printf("[news:create] attachments: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	return helper.JsonCreated(c, "게시글이 등록되었습니다.", h.loadOne(ctx, post.NewsPostID))
}

// ===================== ADMIN UPDATE =====================
// PUT /admin/news/:id
func (h *NewsPostController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	var req newsDTO.UpdateNewsPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateNews.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}
	if req.Attachments != nil && len(*req.Attachments) > 5 {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", []string{"첨부파일은 최대 5개까지 등록할 수 있습니다."})
	}

	var post newsModel.NewsPostModel
	if err := h.DB.WithContext(ctx).
		Where("news_post_id = ?", postID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
		}
		log.Printf("[news:update] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	if req.Title != nil {
		post.NewsPostTitle = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		post.NewsPostCategory = *req.Category
	}
	if req.Summary != nil {
		post.NewsPostSummary = req.Summary
	}
	if req.Content != nil {
		content, err := encodeParagraphs(helper.MarkdownToParagraphs(*req.Content))
		if err != nil {
			log.Printf("[news:update] content: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
		}
		post.NewsPostContent = content
	}
	if req.HeroImageURL != nil {
		post.NewsPostHeroImageURL = req.HeroImageURL
	}
	if req.HeroImageAlt != nil {
		post.NewsPostHeroImageAlt = req.HeroImageAlt
	}
	if req.PublishAt != nil {
		post.NewsPostPublishAt = *req.PublishAt
	}
	if req.IsHighlighted != nil {
		post.NewsPostIsHighlighted = *req.IsHighlighted
	}
	if req.AudienceScope != nil {
		post.NewsPostAudienceScope = *req.AudienceScope
	}

	if err := h.DB.WithContext(ctx).Save(&post).Error; err != nil {
		log.Printf("[news:update] save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
	}

	if req.Attachments != nil {
		if err := h.replaceAttachments(ctx, post.NewsPostID, *req.Attachments, true); err != nil {
			log.Printf("[news:update] attachments: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 저장 중 문제가 발생했습니다.")
		}
	}

	return helper.JsonUpdated(c, "게시글이 수정되었습니다.", h.loadOne(ctx, post.NewsPostID))
}

// ===================== ADMIN DELETE =====================
// DELETE /admin/news/:id
func (h *NewsPostController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.EnsureAdmin(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	ctx := c.UserContext()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "주소가 올바르지 않습니다.")
	}

	res := h.DB.WithContext(ctx).
		Where("news_post_id = ?", postID).
		Delete(&newsModel.NewsPostModel{})
	if res.Error != nil {
		log.Printf("[news:delete] delete: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "게시글 삭제 중 문제가 발생했습니다.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "게시글을 찾을 수 없습니다.")
	}
	return helper.JsonDeleted(c, "게시글이 삭제되었습니다.", fiber.Map{"news_post_id": postID})
}

/* ===================== INTERNAL ===================== */

func encodeParagraphs(paragraphs []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(paragraphs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// replaceAttachments: wholesale swap, delete first when replacing. Inserts run
// one by one; there is no transaction, matching the rest of the write path.
func (h *NewsPostController) replaceAttachments(ctx context.Context, postID uuid.UUID, inputs []newsDTO.AttachmentInput, wipe bool) error {
	if wipe {
		if err := h.DB.WithContext(ctx).
			Where("news_attachment_post_id = ?", postID).
			Delete(&newsModel.NewsAttachmentModel{}).Error; err != nil {
			return err
		}
	}
	for _, in := range inputs {
		fileURL := strings.TrimSpace(in.FileURL)
		if fileURL == "" {
			continue
		}
		att := newsModel.NewsAttachmentModel{
			NewsAttachmentPostID:  postID,
			NewsAttachmentFileURL: fileURL,
			NewsAttachmentLabel:   in.Label,
		}
		if err := h.DB.WithContext(ctx).Create(&att).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *NewsPostController) loadOne(ctx context.Context, postID uuid.UUID) *newsDTO.NewsPostResponse {
	var rows []newsPostRow
	query := newsSelect + "WHERE p.news_post_id = ? GROUP BY p.news_post_id"
	if err := h.DB.WithContext(ctx).Raw(query, postID).Scan(&rows).Error; err != nil || len(rows) == 0 {
		return nil
	}
	resp := rowToResponse(rows[0])
	return &resp
}
