package dto

import (
	"time"

	"github.com/pradipta/siakad/internal/app/models"
)

// CreateOfferingRequest creates a course offering
type CreateOfferingRequest struct {
	MataKuliahID int64  `json:"mataKuliahId" binding:"required" validate:"gt=0"`
	Semester     string `json:"semester" binding:"required" validate:"oneof=GANJIL GENAP"`
	TahunAjaran  string `json:"tahunAjaran" binding:"required" example:"2025/2026"`
}

// OfferingResponse is a course offering plus the advisory RPS approval flag
type OfferingResponse struct {
	Offering    *models.CourseOffering `json:"offering"`
	RPSApproved bool                   `json:"rpsApproved"`
}

// CreateComponentRequest adds an assessment component to an offering.
// Legacy components require legacyType; OBE components require subCpmkId.
type CreateComponentRequest struct {
	Family         string   `json:"family" binding:"required" validate:"oneof=LEGACY OBE"`
	Weight         *float64 `json:"weight" binding:"required"`
	LegacyType     *string `json:"legacyType,omitempty"`
	SubCPMKID      *int64  `json:"subCpmkId,omitempty"`
	PertemuanRange *string `json:"pertemuanRange,omitempty" example:"1-7"`
	Description    *string `json:"description,omitempty"`
}

// UpdateComponentRequest patches the mutable fields of a component. Family
// and identity (legacyType/subCpmkId) are immutable.
type UpdateComponentRequest struct {
	Weight         *float64 `json:"weight,omitempty"`
	PertemuanRange *string  `json:"pertemuanRange,omitempty"`
	Description    *string  `json:"description,omitempty"`
}

// WeightSummaryResponse reports the offering's configured weight state
type WeightSummaryResponse struct {
	OfferingID        int64             `json:"offeringId"`
	TotalWeight       float64           `json:"totalWeight" example:"100"`
	IsReadyForGrading bool              `json:"isReadyForGrading"`
	ComponentCount    int               `json:"componentCount"`
	RPSApproved       bool              `json:"rpsApproved"`
	Components        []ComponentWeight `json:"components"`
}

// ComponentWeight is one line of the weight summary
type ComponentWeight struct {
	ComponentID int64   `json:"componentId"`
	Label       string  `json:"label" example:"UTS"`
	Weight      float64 `json:"weight" example:"30"`
}

// UpsertScoreRequest records or overwrites a student's component score
type UpsertScoreRequest struct {
	StudentID   int64   `json:"studentId" binding:"required" validate:"gt=0"`
	ComponentID int64   `json:"componentId" binding:"required" validate:"gt=0"`
	RawScore    float64 `json:"rawScore"`
}

// StudentScoresResponse lists a student's component scores for an offering
type StudentScoresResponse struct {
	StudentID  int64                           `json:"studentId"`
	OfferingID int64                           `json:"offeringId"`
	Scores     []*models.StudentComponentScore `json:"scores"`
}

// RecomputeBatchRequest selects the students to recompute. An empty list
// means every actively enrolled student of the offering.
type RecomputeBatchRequest struct {
	StudentIDs []int64 `json:"studentIds,omitempty"`
}

// StudentOutcome is the per-student result of a batch recompute
type StudentOutcome struct {
	StudentID  int64              `json:"studentId"`
	FinalGrade *models.FinalGrade `json:"finalGrade,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// BatchReport summarizes one recompute run
type BatchReport struct {
	RunID       string           `json:"runId"`
	OfferingID  int64            `json:"offeringId"`
	StartedAt   time.Time        `json:"startedAt"`
	CompletedAt time.Time        `json:"completedAt"`
	Total       int              `json:"total"`
	Computed    int              `json:"computed"`
	Failed      int              `json:"failed"`
	Skipped     int              `json:"skipped"`
	Outcomes    []StudentOutcome `json:"outcomes"`
}

// FinalGradeResponse is a final grade plus the advisory RPS approval flag
type FinalGradeResponse struct {
	FinalGrade  *models.FinalGrade `json:"finalGrade"`
	Incomplete  bool               `json:"incomplete"`
	RPSApproved bool               `json:"rpsApproved"`
}
