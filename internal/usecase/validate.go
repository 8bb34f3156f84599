package usecase

import (
	"strings"

	"ripple/internal/apperr"
	"ripple/internal/entity"
)

const (
	nameMinLen     = 5
	nameMaxLen     = 20
	ageMin         = 12
	ageMax         = 150
	passwordMinLen = 9
)

// normalizeEmail is applied wherever an email enters the system, so
// lookups and the unique index always see the canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return apperr.New(apperr.ValidationFailed, "name must be between %d and %d characters", nameMinLen, nameMaxLen)
	}
	for _, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			return apperr.New(apperr.ValidationFailed, "name must contain only letters and numbers")
		}
	}
	return nil
}

func validateAge(age int) error {
	if age < ageMin || age > ageMax {
		return apperr.New(apperr.ValidationFailed, "age must be between %d and %d", ageMin, ageMax)
	}
	return nil
}

func validateNewPassword(password, passwordConfirm string) error {
	if len(password) < passwordMinLen {
		return apperr.New(apperr.ValidationFailed, "password must be at least %d characters", passwordMinLen)
	}
	if password != passwordConfirm {
		return apperr.New(apperr.ValidationFailed, "passwords do not match")
	}
	return nil
}

func validatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.New(apperr.ValidationFailed, "post content must not be empty")
	}
	if len(content) > entity.PostContentMax {
		return apperr.New(apperr.ValidationFailed, "post content must be at most %d characters", entity.PostContentMax)
	}
	return nil
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.New(apperr.ValidationFailed, "comment content must not be empty")
	}
	if len(content) > entity.CommentContentMax {
		return apperr.New(apperr.ValidationFailed, "comment content must be at most %d characters", entity.CommentContentMax)
	}
	return nil
}
