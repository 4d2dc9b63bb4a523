package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// skippedBatchCancelled marks students a cancelled batch never started.
const skippedBatchCancelled = "skipped: batch cancelled"

type finalComputer interface {
	ComputeFinal(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error)
}

type readinessChecker interface {
	IsReadyForGrading(ctx context.Context, offeringID int64) (bool, float64, error)
}

type enrollmentLister interface {
	ActiveStudentIDs(ctx context.Context, offeringID int64) ([]int64, error)
}

// RecomputeService fans out final-grade computation across the students of
// an offering after a configuration change. Each student is an independent
// unit of work: one failure never aborts the rest of the batch.
type RecomputeService struct {
	calculator  finalComputer
	readiness   readinessChecker
	enrollments enrollmentLister
	concurrency int
	logger      zerolog.Logger
}

// NewRecomputeService creates a new recompute service instance
func NewRecomputeService(
	calculator finalComputer,
	readiness readinessChecker,
	enrollments enrollmentLister,
	concurrency int,
	logger zerolog.Logger,
) *RecomputeService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RecomputeService{
		calculator:  calculator,
		readiness:   readiness,
		enrollments: enrollments,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RecomputeOne recomputes a single student's final grade
func (s *RecomputeService) RecomputeOne(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	return s.calculator.ComputeFinal(ctx, studentID, offeringID)
}

// RecomputeBatch recomputes final grades for the given students, or for
// every actively enrolled student when studentIDs is empty. The offering's
// weight configuration is checked once up front; an offering whose weights
// do not sum to 100 fails the whole batch before any work starts.
// Cancelling ctx stops new students from starting while in-flight
// computations run to completion and are reported as such.
func (s *RecomputeService) RecomputeBatch(ctx context.Context, offeringID int64, studentIDs []int64) (*dto.BatchReport, error) {
	ready, totalWeight, err := s.readiness.IsReadyForGrading(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, fmt.Errorf("%w: configured total is %.2f", apperrors.ErrIncompleteWeights, totalWeight)
	}

	if len(studentIDs) == 0 {
		studentIDs, err = s.enrollments.ActiveStudentIDs(ctx, offeringID)
		if err != nil {
			return nil, err
		}
	}
	studentIDs = dedupe(studentIDs)

	report := &dto.BatchReport{
		RunID:      uuid.NewString(),
		OfferingID: offeringID,
		StartedAt:  time.Now().UTC(),
		Total:      len(studentIDs),
		Outcomes:   make([]dto.StudentOutcome, len(studentIDs)),
	}

	s.logger.Info().
		Str("runId", report.RunID).
		Int64("offeringId", offeringID).
		Int("students", len(studentIDs)).
		Int("concurrency", s.concurrency).
		Msg("Starting batch recompute")

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)

	// Workers compute against a context detached from the batch context:
	// cancelling the batch stops new students from starting while in-flight
	// computations run to completion.
	workCtx := context.WithoutCancel(ctx)

	for i, studentID := range studentIDs {
		cancelled := ctx.Err() != nil
		if !cancelled {
			select {
			case <-ctx.Done():
				cancelled = true
			case sem <- struct{}{}:
				// A cancel racing the acquisition still skips the student.
				if ctx.Err() != nil {
					<-sem
					cancelled = true
				}
			}
		}
		if cancelled {
			// Students never started are skipped.
			for j := i; j < len(studentIDs); j++ {
				report.Outcomes[j] = dto.StudentOutcome{
					StudentID: studentIDs[j],
					Error:     skippedBatchCancelled,
				}
			}
			break
		}

		wg.Add(1)
		go func(idx int, sid int64) {
			defer wg.Done()
			defer func() { <-sem }()

			grade, err := s.calculator.ComputeFinal(workCtx, sid, offeringID)
			if err != nil {
				report.Outcomes[idx] = dto.StudentOutcome{StudentID: sid, Error: err.Error()}
				return
			}
			report.Outcomes[idx] = dto.StudentOutcome{StudentID: sid, FinalGrade: grade}
		}(i, studentID)
	}

	wg.Wait()
	report.CompletedAt = time.Now().UTC()

	for _, out := range report.Outcomes {
		switch {
		case out.FinalGrade != nil:
			report.Computed++
		case out.Error == skippedBatchCancelled:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	s.logger.Info().
		Str("runId", report.RunID).
		Int64("offeringId", offeringID).
		Int("computed", report.Computed).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Dur("elapsed", report.CompletedAt.Sub(report.StartedAt)).
		Msg("Batch recompute finished")

	return report, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
