package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/gradescale"
	"github.com/pradipta/siakad/internal/pkg/helpers"
)

// GradeService computes final grades. A final grade is a pure projection of
// the current component and score state: recomputing with unchanged inputs
// yields the same score, letter and point every time.
type GradeService struct {
	snapshots SnapshotRunner
	grades    finalGradeStore
	scale     gradescale.Scale
	cache     GradeCache
	logger    zerolog.Logger
}

// NewGradeService creates a new grade service instance
func NewGradeService(
	snapshots SnapshotRunner,
	grades finalGradeStore,
	scale gradescale.Scale,
	cache GradeCache,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		snapshots: snapshots,
		grades:    grades,
		scale:     scale,
		cache:     cache,
		logger:    logger,
	}
}

// ComputeFinal aggregates a student's component scores into a final grade
// and overwrites the stored row. Components without a recorded score
// contribute 0 to the weighted sum; the result reports how many components
// were included so callers can flag incomplete grades. Fails with
// IncompleteWeights while the offering's weights do not sum to 100.
func (s *GradeService) ComputeFinal(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	if studentID <= 0 || offeringID <= 0 {
		return nil, apperrors.NewBadRequestError("studentId and offeringId must be positive")
	}

	var grade *models.FinalGrade

	err := s.snapshots.InSnapshot(ctx, func(ctx context.Context, snap *GradeSnapshot) error {
		if _, err := snap.Offerings.GetByID(ctx, offeringID); err != nil {
			return err
		}

		components, err := snap.Components.GetByOffering(ctx, offeringID)
		if err != nil {
			return err
		}

		var totalWeight float64
		for _, c := range components {
			totalWeight += c.Weight
		}
		if math.Abs(totalWeight-100) > weightTolerance {
			return fmt.Errorf("%w: configured total is %.2f", apperrors.ErrIncompleteWeights, totalWeight)
		}

		scores, err := snap.Scores.GetByStudentAndOffering(ctx, studentID, offeringID)
		if err != nil {
			return err
		}

		scoreByComponent := make(map[int64]float64, len(scores))
		for _, sc := range scores {
			scoreByComponent[sc.ComponentID] = sc.RawScore
		}

		var weightedSum float64
		included := 0
		for _, c := range components {
			raw, ok := scoreByComponent[c.ID]
			if !ok {
				// Missing score contributes 0 to the weighted sum.
				continue
			}
			weightedSum += raw * c.Weight / 100
			included++
		}

		finalScore := helpers.Round2(weightedSum)
		converted, err := s.scale.Convert(finalScore)
		if err != nil {
			return err
		}

		grade = &models.FinalGrade{
			StudentID:          studentID,
			OfferingID:         offeringID,
			FinalScore:         finalScore,
			FinalLetter:        converted.Letter,
			FinalGPAPoint:      converted.Point,
			ComponentsIncluded: included,
			TotalComponents:    len(components),
			ComputedAt:         time.Now().UTC(),
		}

		return snap.Grades.Upsert(ctx, grade)
	})

	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, grade); err != nil {
			s.logger.Warn().Err(err).
				Int64("studentId", studentID).
				Int64("offeringId", offeringID).
				Msg("Failed to cache final grade")
		}
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("offeringId", offeringID).
		Float64("finalScore", grade.FinalScore).
		Str("finalLetter", grade.FinalLetter).
		Int("componentsIncluded", grade.ComponentsIncluded).
		Int("totalComponents", grade.TotalComponents).
		Msg("Final grade computed")

	return grade, nil
}

// GetFinal reads a stored final grade, consulting the cache first
func (s *GradeService) GetFinal(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	if studentID <= 0 || offeringID <= 0 {
		return nil, apperrors.NewBadRequestError("studentId and offeringId must be positive")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, studentID, offeringID); err == nil && cached != nil {
			return cached, nil
		}
	}

	grade, err := s.grades.GetByStudentAndOffering(ctx, studentID, offeringID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, grade); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache final grade")
		}
	}

	return grade, nil
}

// ListFinalGrades retrieves one page of an offering's final grades plus the
// total row count
func (s *GradeService) ListFinalGrades(ctx context.Context, offeringID int64, offset uint64, limit int) ([]*models.FinalGrade, int64, error) {
	grades, err := s.grades.GetByOffering(ctx, offeringID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.grades.CountByOffering(ctx, offeringID)
	if err != nil {
		return nil, 0, err
	}

	return grades, total, nil
}

// IsIncomplete reports whether a final grade was computed from fewer
// components than the offering defines
func IsIncomplete(grade *models.FinalGrade) bool {
	return grade != nil && grade.ComponentsIncluded < grade.TotalComponents
}

// IsNotFound reports whether err is one of the engine's not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrOfferingNotFound) ||
		errors.Is(err, apperrors.ErrComponentNotFound) ||
		errors.Is(err, apperrors.ErrFinalGradeNotFound) ||
		errors.Is(err, apperrors.ErrScoreNotFound)
}
