package repositories

import (
	"context"
	"fmt"

	"github.com/pradipta/siakad/internal/app/models"
)

// EnrollmentRepository is the read-side view of enrollments the grading
// engine consults. Enrollment lifecycle is owned by the registration module.
type EnrollmentRepository struct {
	db Querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db Querier) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// IsActivelyEnrolled reports whether the student has an ACTIVE enrollment in
// the offering
func (r *EnrollmentRepository) IsActivelyEnrolled(ctx context.Context, studentID, offeringID int64) (bool, error) {
	var enrolled bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND offering_id = $2 AND status = $3
		)`,
		studentID, offeringID, models.EnrollmentActive).Scan(&enrolled)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	return enrolled, nil
}

// ActiveStudentIDs lists the students actively enrolled in an offering
func (r *EnrollmentRepository) ActiveStudentIDs(ctx context.Context, offeringID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id FROM enrollments
		WHERE offering_id = $1 AND status = $2
		ORDER BY student_id`,
		offeringID, models.EnrollmentActive)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled students: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// RPSRepository is the read-side view of the RPS approval workflow. Only the
// approval fact is consumed here; document authoring and versioning live in
// the curriculum module.
type RPSRepository struct {
	db Querier
}

// NewRPSRepository creates a new RPS repository
func NewRPSRepository(db Querier) *RPSRepository {
	return &RPSRepository{
		db: db,
	}
}

// IsApproved reports whether the offering's RPS document has been approved.
// Offerings without an RPS row count as not approved.
func (r *RPSRepository) IsApproved(ctx context.Context, offeringID int64) (bool, error) {
	var approved bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM rps_documents
			WHERE offering_id = $1 AND approved
		)`,
		offeringID).Scan(&approved)
	if err != nil {
		return false, fmt.Errorf("error checking RPS approval: %w", err)
	}

	return approved, nil
}
