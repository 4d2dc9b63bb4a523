package services

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

func newRecomputeFixture(t *testing.T) (*RecomputeService, *gradeFixture) {
	t.Helper()

	f := newGradeFixture(t)
	svc := NewRecomputeService(f.grades, f.components, f.enrolls, 4, zerolog.Nop())
	return svc, f
}

func TestRecomputeBatch_RejectsIncompleteWeights(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	ctx := context.Background()

	_, err := f.components.AddComponent(ctx, f.offeringID, legacySpec(models.LegacyUTS, 30))
	require.NoError(t, err)

	_, err = svc.RecomputeBatch(ctx, f.offeringID, nil)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteWeights)
}

func TestRecomputeBatch_ExplicitStudents(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	for _, studentID := range []int64{301, 302} {
		f.enrolls.enroll(studentID, f.offeringID)
		for _, id := range componentIDs {
			f.record(t, studentID, id, 75)
		}
	}

	// Duplicates collapse to one unit of work per student.
	report, err := svc.RecomputeBatch(ctx, f.offeringID, []int64{301, 302, 301})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, f.offeringID, report.OfferingID)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Computed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, report.Outcomes, 2)
	for _, outcome := range report.Outcomes {
		require.NotNil(t, outcome.FinalGrade)
		assert.InDelta(t, 75, outcome.FinalGrade.FinalScore, 0.001)
		assert.Empty(t, outcome.Error)
	}
	assert.False(t, report.CompletedAt.Before(report.StartedAt))
}

func TestRecomputeBatch_DefaultsToEnrolledStudents(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	enrolled := []int64{311, 312, 313}
	for _, studentID := range enrolled {
		f.enrolls.enroll(studentID, f.offeringID)
		f.record(t, studentID, componentIDs[0], 80)
	}

	report, err := svc.RecomputeBatch(ctx, f.offeringID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Computed)

	got := make([]int64, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		got = append(got, outcome.StudentID)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, enrolled, got)
}

func TestRecomputeBatch_IsolatesFailures(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(321, f.offeringID)
	f.record(t, 321, componentIDs[0], 70)

	// Student id 0 fails validation inside ComputeFinal.
	report, err := svc.RecomputeBatch(ctx, f.offeringID, []int64{321, 0})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Computed)
	assert.Equal(t, 1, report.Failed)

	byStudent := make(map[int64]string)
	for _, outcome := range report.Outcomes {
		byStudent[outcome.StudentID] = outcome.Error
	}
	assert.Empty(t, byStudent[321])
	assert.NotEmpty(t, byStudent[0])
}

func TestRecomputeBatch_CancelledContextSkipsRemaining(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	f.addLegacySplit(t)

	students := []int64{331, 332, 333}
	for _, studentID := range students {
		f.enrolls.enroll(studentID, f.offeringID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.RecomputeBatch(ctx, f.offeringID, students)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 0, report.Computed)
	assert.Equal(t, 3, report.Skipped)
	for _, outcome := range report.Outcomes {
		assert.Contains(t, outcome.Error, "skipped")
	}
}

// fixedReadiness reports every offering as fully configured.
type fixedReadiness struct{}

func (fixedReadiness) IsReadyForGrading(context.Context, int64) (bool, float64, error) {
	return true, 100, nil
}

// blockingCalculator parks each computation until release is closed,
// letting tests cancel the batch while a student is in flight.
type blockingCalculator struct {
	started chan int64
	release chan struct{}
}

func (c *blockingCalculator) ComputeFinal(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	c.started <- studentID
	<-c.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &models.FinalGrade{
		StudentID:     studentID,
		OfferingID:    offeringID,
		FinalScore:    75,
		FinalLetter:   "B+",
		FinalGPAPoint: 3.3,
	}, nil
}

func TestRecomputeBatch_CancelLetsInFlightStudentFinish(t *testing.T) {
	calc := &blockingCalculator{
		started: make(chan int64),
		release: make(chan struct{}),
	}
	svc := NewRecomputeService(calc, fixedReadiness{}, newFakeEnrollments(), 1, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		report *dto.BatchReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := svc.RecomputeBatch(ctx, 1, []int64{401, 402})
		done <- result{report, err}
	}()

	// Wait until the first student is mid-computation, then cancel the
	// batch and let the worker run to completion.
	assert.Equal(t, int64(401), <-calc.started)
	cancel()
	close(calc.release)

	res := <-done
	require.NoError(t, res.err)

	assert.Equal(t, 2, res.report.Total)
	assert.Equal(t, 1, res.report.Computed)
	assert.Equal(t, 0, res.report.Failed)
	assert.Equal(t, 1, res.report.Skipped)

	require.NotNil(t, res.report.Outcomes[0].FinalGrade)
	assert.Equal(t, int64(401), res.report.Outcomes[0].StudentID)
	assert.Empty(t, res.report.Outcomes[0].Error)
	assert.Nil(t, res.report.Outcomes[1].FinalGrade)
	assert.Contains(t, res.report.Outcomes[1].Error, "skipped")
}

func TestRecomputeOne(t *testing.T) {
	svc, f := newRecomputeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(341, f.offeringID)
	for _, id := range componentIDs {
		f.record(t, 341, id, 88)
	}

	grade, err := svc.RecomputeOne(ctx, 341, f.offeringID)
	require.NoError(t, err)
	assert.InDelta(t, 88, grade.FinalScore, 0.001)
	assert.Equal(t, "A", grade.FinalLetter)
}
