package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by the services. Handlers map them to HTTP status
// codes; callers should match with errors.Is.
var (
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrSessionNotActive = errors.New("game session already ended")
)

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers that do not translate errors.
	msg := strings.ToUpper(err.Error())
	return strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "DUPLICATE KEY")
}
