package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewIntakeValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("jobId", uuidValidator),
		},
		{
			Rule: registerFn("resume_filename", resumeFilenameValidator),
		},
		{
			Rule: registerFn("phone", phoneValidator),
		},
	}
}

func NewJobValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("not_blank", notBlankValidator),
		},
		{
			Rule: registerFn("job_status", jobStatusValidator),
		},
	}
}
