package models

import "time"

// StudentComponentScore is a student's raw score for one assessment
// component, plus the letter/point derived from it on every write. One row
// per (student, component); overwritten, never deleted.
type StudentComponentScore struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	ComponentID int64     `json:"componentId" db:"component_id"`
	RawScore    float64   `json:"rawScore" db:"raw_score"`
	Letter      string    `json:"letter" db:"letter"`
	GPAPoint    float64   `json:"gpaPoint" db:"gpa_point"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
