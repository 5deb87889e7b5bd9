package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/artifact"
	"github.com/talentwire/intake-api/internal/store/model"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{6,19}$`)

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}

func resumeFilenameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := artifact.ValidateFilename(val)
	return err == nil
}

func phoneValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if val == "" {
		return true
	}

	return phoneRegex.MatchString(val)
}

func notBlankValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}

func jobStatusValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "":
		// defaults to open
		return true
	case model.JobStatusOpen:
		return true
	case model.JobStatusClosed:
		return true
	default:
		return false
	}
}
