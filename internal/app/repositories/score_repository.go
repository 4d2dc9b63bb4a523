package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pradipta/siakad/internal/app/models"
)

// ScoreRepository handles database operations for student component scores
type ScoreRepository struct {
	db Querier
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db Querier) *ScoreRepository {
	return &ScoreRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ScoreRepository) WithTx(tx pgx.Tx) *ScoreRepository {
	return &ScoreRepository{db: tx}
}

// Upsert writes a score row, replacing any prior value for the same
// (student, component) pair. Concurrent writers for the same key serialize on
// the unique index row; the last committed write wins.
func (r *ScoreRepository) Upsert(ctx context.Context, score *models.StudentComponentScore) error {
	query := `
		INSERT INTO student_component_scores (student_id, component_id, raw_score, letter, gpa_point, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (student_id, component_id)
		DO UPDATE SET raw_score = EXCLUDED.raw_score,
		              letter = EXCLUDED.letter,
		              gpa_point = EXCLUDED.gpa_point,
		              updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		score.StudentID,
		score.ComponentID,
		score.RawScore,
		score.Letter,
		score.GPAPoint,
	).Scan(&score.ID, &score.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting score: %w", err)
	}

	return nil
}

// GetByStudentAndOffering retrieves all of a student's score rows for the
// components of one offering
func (r *ScoreRepository) GetByStudentAndOffering(ctx context.Context, studentID, offeringID int64) ([]*models.StudentComponentScore, error) {
	query := `
		SELECT s.id, s.student_id, s.component_id, s.raw_score, s.letter, s.gpa_point, s.updated_at
		FROM student_component_scores s
		JOIN assessment_components c ON c.id = s.component_id
		WHERE s.student_id = $1 AND c.offering_id = $2
		ORDER BY s.component_id
	`

	rows, err := r.db.Query(ctx, query, studentID, offeringID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.StudentComponentScore
	for rows.Next() {
		var score models.StudentComponentScore
		if err := rows.Scan(
			&score.ID,
			&score.StudentID,
			&score.ComponentID,
			&score.RawScore,
			&score.Letter,
			&score.GPAPoint,
			&score.UpdatedAt,
		); err != nil {
			return nil, err
		}
		scores = append(scores, &score)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
