package models

import "time"

// FinalGrade is the derived per-student course result. It is a replaceable
// projection of the current component and score state: recomputation
// overwrites the row, and "incomplete" is ComponentsIncluded <
// TotalComponents, not a stored status.
type FinalGrade struct {
	ID                 int64     `json:"id" db:"id"`
	StudentID          int64     `json:"studentId" db:"student_id"`
	OfferingID         int64     `json:"offeringId" db:"offering_id"`
	FinalScore         float64   `json:"finalScore" db:"final_score"`
	FinalLetter        string    `json:"finalLetter" db:"final_letter"`
	FinalGPAPoint      float64   `json:"finalGpaPoint" db:"final_gpa_point"`
	ComponentsIncluded int       `json:"componentsIncluded" db:"components_included"`
	TotalComponents    int       `json:"totalComponents" db:"total_components"`
	ComputedAt         time.Time `json:"computedAt" db:"computed_at"`
}
