package models

// Enrollment is the read-side record the engine consults before accepting a
// score write. Enrollment lifecycle itself is managed elsewhere.
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	OfferingID int64            `json:"offeringId" db:"offering_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
}
