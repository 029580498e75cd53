package helper

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationIssues flattens validator.v10 errors into the human-readable
// issue strings the admin/parent forms display. Field-level machine codes are
// deliberately not exposed.
func ValidationIssues(err error) []string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"입력값을 확인해 주세요."}
	}

	issues := make([]string, 0, len(ve))
	for _, fe := range ve {
		issues = append(issues, issueMessage(fe))
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 값을 입력해 주세요.", fe.Field())
	case "min":
		return fmt.Sprintf("%s 값은 최소 %s자 이상이어야 합니다.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s 값은 최대 %s까지 허용됩니다.", fe.Field(), fe.Param())
	case "email":
		return "유효한 이메일 주소를 입력해 주세요."
	case "oneof":
		return fmt.Sprintf("%s 값이 허용된 항목이 아닙니다.", fe.Field())
	case "url":
		return "유효한 URL을 입력해 주세요."
	case "uuid":
		return fmt.Sprintf("%s 값이 올바른 형식이 아닙니다.", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s 값이 올바른 날짜 형식이 아닙니다.", fe.Field())
	default:
		return fmt.Sprintf("%s 값을 확인해 주세요.", fe.Field())
	}
}
