package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/dberrors"
)

// OfferingRepository handles database operations for course offerings
type OfferingRepository struct {
	db Querier
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db Querier) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *OfferingRepository) WithTx(tx pgx.Tx) *OfferingRepository {
	return &OfferingRepository{db: tx}
}

// Create inserts a new course offering
func (r *OfferingRepository) Create(ctx context.Context, offering *models.CourseOffering) error {
	query := `
		INSERT INTO course_offerings (mata_kuliah_id, semester, tahun_ajaran)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, offering.MataKuliahID, offering.Semester, offering.TahunAjaran).Scan(&offering.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_offerings_key_unique") {
			return apperrors.ErrOfferingAlreadyExists
		}
		return fmt.Errorf("error creating course offering: %w", err)
	}

	return nil
}

// GetByID retrieves a course offering by ID
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	query := `
		SELECT id, mata_kuliah_id, semester, tahun_ajaran, system_type
		FROM course_offerings
		WHERE id = $1
	`

	var offering models.CourseOffering
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offering.ID,
		&offering.MataKuliahID,
		&offering.Semester,
		&offering.TahunAjaran,
		&offering.SystemType,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving course offering: %w", err)
	}

	return &offering, nil
}

// SetSystemType fixes the offering's grading family. Only transitions from
// NULL are accepted; the family is immutable once set.
func (r *OfferingRepository) SetSystemType(ctx context.Context, id int64, family models.GradingFamily) error {
	query := `
		UPDATE course_offerings
		SET system_type = $1
		WHERE id = $2 AND system_type IS NULL
	`

	cmdTag, err := r.db.Exec(ctx, query, family, id)
	if err != nil {
		return fmt.Errorf("error setting offering system type: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFamilyMismatch
	}

	return nil
}

// ClearSystemType unsets the grading family when the last component of an
// offering is removed, so the next component may pick either family again.
func (r *OfferingRepository) ClearSystemType(ctx context.Context, id int64) error {
	query := `
		UPDATE course_offerings
		SET system_type = NULL
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM assessment_components WHERE offering_id = $1)
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error clearing offering system type: %w", err)
	}

	return nil
}
