package domain

import (
	"github.com/go-playground/validator/v10"

	"github.com/rdboard/rd-tracker-backend/internal/validation"
)

// Stage is one workflow phase of a requirement.
type Stage string

const (
	StageProductConcept    Stage = "Product Concept"
	StageScreenTest        Stage = "Screen Test"
	StageTestingValidation Stage = "Testing Validation"
	StageFirstBatch        Stage = "First Batch"
	StagePostLaunch        Stage = "Post Launch"
	StageProjectClose      Stage = "Project Close"
)

var stageOrder = []Stage{
	StageProductConcept,
	StageScreenTest,
	StageTestingValidation,
	StageFirstBatch,
	StagePostLaunch,
	StageProjectClose,
}

var stageColors = map[Stage]string{
	StageProductConcept:    "#0d9488",
	StageScreenTest:        "#f97316",
	StageTestingValidation: "#8b5cf6",
	StageFirstBatch:        "#3b82f6",
	StagePostLaunch:        "#22c55e",
	StageProjectClose:      "#6b7280",
}

// Stages returns the stage enumeration in display order. The slice is a copy.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

func (s Stage) Valid() bool {
	_, ok := stageColors[s]
	return ok
}

// Color is the dashboard chart colour of the stage.
func (s Stage) Color() string {
	return stageColors[s]
}

func (s Stage) String() string {
	return string(s)
}

// ParseStage returns the stage named by v, exact match.
func ParseStage(v string) (Stage, bool) {
	s := Stage(v)
	return s, s.Valid()
}

func init() {
	validation.Register("stage", func(fl validator.FieldLevel) bool {
		return Stage(fl.Field().String()).Valid()
	})
}
