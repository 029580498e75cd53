package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sinchonkinder_backend/internals/constants"
)

// Locals keys written by the access gate. Handlers must derive the actor from
// these, never from a client-supplied body field.
const (
	LocalsUserID = "user_id"
	LocalsRole   = "user_role"
	LocalsStatus = "user_status"
)

var ErrNoSession = errors.New("로그인이 필요합니다.")

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalsUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoSession
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRole).(string)
	return role
}

func GetStatusFromToken(c *fiber.Ctx) string {
	status, _ := c.Locals(LocalsStatus).(string)
	return status
}

// EnsureAdmin fails closed: no session or wrong role both yield the same
// generic message.
func EnsureAdmin(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, errors.New("관리자 권한이 필요합니다.")
	}
	if GetRoleFromToken(c) != constants.RoleAdmin {
		return uuid.Nil, errors.New("관리자 권한이 필요합니다.")
	}
	return id, nil
}
