package domain

import "github.com/rdboard/rd-tracker-backend/internal/validation"

func (in CreateRequirementInput) Validate() error {
	return validation.Struct(in)
}

func (in UpdateDetailsInput) Validate() error {
	return validation.Struct(in)
}

func (in CreateCommentInput) Validate() error {
	return validation.Struct(in)
}
