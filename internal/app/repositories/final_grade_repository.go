package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// FinalGradeRepository handles database operations for final grades
type FinalGradeRepository struct {
	db Querier
}

// NewFinalGradeRepository creates a new final grade repository
func NewFinalGradeRepository(db Querier) *FinalGradeRepository {
	return &FinalGradeRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *FinalGradeRepository) WithTx(tx pgx.Tx) *FinalGradeRepository {
	return &FinalGradeRepository{db: tx}
}

// Upsert overwrites the final grade row for (student, offering)
func (r *FinalGradeRepository) Upsert(ctx context.Context, grade *models.FinalGrade) error {
	query := `
		INSERT INTO final_grades (student_id, offering_id, final_score, final_letter, final_gpa_point, components_included, total_components, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (student_id, offering_id)
		DO UPDATE SET final_score = EXCLUDED.final_score,
		              final_letter = EXCLUDED.final_letter,
		              final_gpa_point = EXCLUDED.final_gpa_point,
		              components_included = EXCLUDED.components_included,
		              total_components = EXCLUDED.total_components,
		              computed_at = EXCLUDED.computed_at
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID,
		grade.OfferingID,
		grade.FinalScore,
		grade.FinalLetter,
		grade.FinalGPAPoint,
		grade.ComponentsIncluded,
		grade.TotalComponents,
		grade.ComputedAt,
	).Scan(&grade.ID)

	if err != nil {
		return fmt.Errorf("error upserting final grade: %w", err)
	}

	return nil
}

// GetByStudentAndOffering retrieves a student's final grade for an offering
func (r *FinalGradeRepository) GetByStudentAndOffering(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	query := `
		SELECT id, student_id, offering_id, final_score, final_letter, final_gpa_point, components_included, total_components, computed_at
		FROM final_grades
		WHERE student_id = $1 AND offering_id = $2
	`

	var grade models.FinalGrade
	err := r.db.QueryRow(ctx, query, studentID, offeringID).Scan(
		&grade.ID,
		&grade.StudentID,
		&grade.OfferingID,
		&grade.FinalScore,
		&grade.FinalLetter,
		&grade.FinalGPAPoint,
		&grade.ComponentsIncluded,
		&grade.TotalComponents,
		&grade.ComputedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFinalGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving final grade: %w", err)
	}

	return &grade, nil
}

// GetByOffering retrieves one page of an offering's final grades ordered by student
func (r *FinalGradeRepository) GetByOffering(ctx context.Context, offeringID int64, offset uint64, limit int) ([]*models.FinalGrade, error) {
	query := `
		SELECT id, student_id, offering_id, final_score, final_letter, final_gpa_point, components_included, total_components, computed_at
		FROM final_grades
		WHERE offering_id = $1
		ORDER BY student_id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, offeringID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving final grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.FinalGrade
	for rows.Next() {
		var grade models.FinalGrade
		if err := rows.Scan(
			&grade.ID,
			&grade.StudentID,
			&grade.OfferingID,
			&grade.FinalScore,
			&grade.FinalLetter,
			&grade.FinalGPAPoint,
			&grade.ComponentsIncluded,
			&grade.TotalComponents,
			&grade.ComputedAt,
		); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// CountByOffering returns how many final grades exist for an offering
func (r *FinalGradeRepository) CountByOffering(ctx context.Context, offeringID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM final_grades WHERE offering_id = $1`,
		offeringID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting final grades: %w", err)
	}

	return count, nil
}
