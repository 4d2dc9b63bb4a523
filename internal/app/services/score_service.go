package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/gradescale"
	"github.com/pradipta/siakad/internal/pkg/helpers"
	"github.com/pradipta/siakad/internal/pkg/validation"
)

type scoreStore interface {
	Upsert(ctx context.Context, score *models.StudentComponentScore) error
	GetByStudentAndOffering(ctx context.Context, studentID, offeringID int64) ([]*models.StudentComponentScore, error)
}

type componentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.AssessmentComponent, error)
}

type enrollmentChecker interface {
	IsActivelyEnrolled(ctx context.Context, studentID, offeringID int64) (bool, error)
}

// GradeCache invalidates or refreshes cached final grades. Implementations
// must tolerate being called for keys that are not cached.
type GradeCache interface {
	Get(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error)
	Set(ctx context.Context, grade *models.FinalGrade) error
	Invalidate(ctx context.Context, studentID, offeringID int64) error
}

// ScoreService records per-student component scores. Every write derives the
// component letter/point through the grade scale before persisting.
type ScoreService struct {
	scores      scoreStore
	components  componentGetter
	enrollments enrollmentChecker
	scale       gradescale.Scale
	cache       GradeCache
	logger      zerolog.Logger
}

// NewScoreService creates a new score service instance
func NewScoreService(
	scores scoreStore,
	components componentGetter,
	enrollments enrollmentChecker,
	scale gradescale.Scale,
	cache GradeCache,
	logger zerolog.Logger,
) *ScoreService {
	return &ScoreService{
		scores:      scores,
		components:  components,
		enrollments: enrollments,
		scale:       scale,
		cache:       cache,
		logger:      logger,
	}
}

// UpsertScore validates and writes one score row, replacing any prior value
// for the (student, component) pair. It does not recompute the final grade;
// that is an explicit, separate call.
func (s *ScoreService) UpsertScore(ctx context.Context, studentID, componentID int64, rawScore float64) (*models.StudentComponentScore, error) {
	if studentID <= 0 {
		return nil, apperrors.NewBadRequestError("studentId must be positive")
	}

	component, err := s.components.GetByID(ctx, componentID)
	if err != nil {
		return nil, err
	}

	if !validation.IsValidScore(rawScore) {
		return nil, fmt.Errorf("%w: got %v", apperrors.ErrInvalidScore, rawScore)
	}

	enrolled, err := s.enrollments.IsActivelyEnrolled(ctx, studentID, component.OfferingID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolled
	}

	rawScore = helpers.Round2(rawScore)
	grade, err := s.scale.Convert(rawScore)
	if err != nil {
		return nil, err
	}

	score := &models.StudentComponentScore{
		StudentID:   studentID,
		ComponentID: componentID,
		RawScore:    rawScore,
		Letter:      grade.Letter,
		GPAPoint:    grade.Point,
	}

	if err := s.scores.Upsert(ctx, score); err != nil {
		return nil, err
	}

	// The cached final grade is stale now. Dropping it is best effort; the
	// authoritative row in Postgres is untouched until the next recompute.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, studentID, component.OfferingID); err != nil {
			s.logger.Warn().Err(err).
				Int64("studentId", studentID).
				Int64("offeringId", component.OfferingID).
				Msg("Failed to invalidate cached final grade")
		}
	}

	s.logger.Debug().
		Int64("studentId", studentID).
		Int64("componentId", componentID).
		Float64("rawScore", rawScore).
		Str("letter", grade.Letter).
		Msg("Score recorded")

	return score, nil
}

// GetStudentScores lists a student's component scores for an offering
func (s *ScoreService) GetStudentScores(ctx context.Context, studentID, offeringID int64) ([]*models.StudentComponentScore, error) {
	if studentID <= 0 || offeringID <= 0 {
		return nil, apperrors.NewBadRequestError("studentId and offeringId must be positive")
	}

	return s.scores.GetByStudentAndOffering(ctx, studentID, offeringID)
}
