package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/configs"
	"sinchonkinder_backend/internals/constants"
	authDTO "sinchonkinder_backend/internals/features/users/auth/dto"
	authModel "sinchonkinder_backend/internals/features/users/auth/model"
	helper "sinchonkinder_backend/internals/helpers"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
	"sinchonkinder_backend/internals/middlewares/gate"
)

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

var validateAuth = validator.New()

// ===================== REGISTER =====================
// POST /member/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}

	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}
	if req.Password != req.ConfirmPassword {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.",
			[]string{"비밀번호와 비밀번호 확인이 일치하지 않습니다."})
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var existing authModel.UserModel
	err := h.DB.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "이미 가입된 이메일입니다.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원가입 처리 중 문제가 발생했습니다. 잠시 후 다시 시도해 주세요.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[register] hash: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원가입 처리 중 문제가 발생했습니다. 잠시 후 다시 시도해 주세요.")
	}

	// 신규 가입자는 항상 승인 대기(pending) 상태의 학부모 계정으로 생성한다.
	user := authModel.UserModel{
		UserName:         req.UserName,
		UserEmail:        email,
		UserPasswordHash: string(hash),
		UserRole:         constants.RoleParent,
		UserStatus:       constants.StatusPending,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("[register] insert: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "회원가입 처리 중 문제가 발생했습니다. 잠시 후 다시 시도해 주세요.")
	}

	return helper.JsonCreated(c, "가입이 완료되었습니다. 승인 후 이용하실 수 있습니다.", authDTO.NewUserResponse(&user))
}

// ===================== LOGIN =====================
// POST /member/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, "입력값을 확인해 주세요.", helper.ValidationIssues(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var user authModel.UserModel
	if err := h.DB.Where("user_email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다.")
		}
		log.Printf("[login] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "로그인 처리 중 문제가 발생했습니다.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다.")
	}

	token, err := gate.SignSessionToken(configs.AuthSecret, user.UserID, user.UserRole, user.UserStatus)
	if err != nil {
		log.Printf("[login] sign: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "로그인 처리 중 문제가 발생했습니다.")
	}
	gate.SetSessionCookie(c, token)

	return helper.JsonOK(c, "로그인되었습니다.", fiber.Map{
		"token": token,
		"user":  authDTO.NewUserResponse(&user),
	})
}

// ===================== LOGOUT =====================
// POST /member/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	gate.ClearSessionCookie(c)
	return helper.JsonOK(c, "로그아웃되었습니다.", nil)
}

// ===================== ME =====================
// GET /member/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user authModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "계정을 찾을 수 없습니다.")
		}
		log.Printf("[me] lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "조회 중 문제가 발생했습니다.")
	}

	return helper.JsonOK(c, "", authDTO.NewUserResponse(&user))
}
