package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/gradescale"
)

type gradeFixture struct {
	grades     *GradeService
	scores     *ScoreService
	components *ComponentService
	enrolls    *fakeEnrollments
	cache      *fakeGradeCache
	offeringID int64
}

func newGradeFixture(t *testing.T) *gradeFixture {
	t.Helper()

	offerings := newFakeOfferingStore()
	components := newFakeComponentStore()
	offerings.componentCount = components.countForOffering
	scores := newFakeScoreStore(components)
	finalGrades := newFakeFinalGradeStore()
	enrolls := newFakeEnrollments()
	cache := newFakeGradeCache()
	scale := gradescale.Default()

	offering := &models.CourseOffering{
		MataKuliahID: 1,
		Semester:     models.SemesterGanjil,
		TahunAjaran:  "2025/2026",
	}
	require.NoError(t, offerings.Create(context.Background(), offering))

	runner := &fakeSnapshotRunner{
		offerings:  offerings,
		components: components,
		scores:     scores,
		grades:     finalGrades,
	}

	return &gradeFixture{
		grades:     NewGradeService(runner, finalGrades, scale, cache, zerolog.Nop()),
		scores:     NewScoreService(scores, components, enrolls, scale, cache, zerolog.Nop()),
		components: NewComponentService(components, offerings, newFakeRPS(), cache, zerolog.Nop()),
		enrolls:    enrolls,
		cache:      cache,
		offeringID: offering.ID,
	}
}

// addLegacySplit configures the standard UTS 30 / UAS 30 / TUGAS 20 /
// PRAKTIKUM 20 weight set and returns the component ids in that order.
func (f *gradeFixture) addLegacySplit(t *testing.T) []int64 {
	t.Helper()
	ctx := context.Background()

	split := []struct {
		legacyType models.LegacyType
		weight     float64
	}{
		{models.LegacyUTS, 30},
		{models.LegacyUAS, 30},
		{models.LegacyTugas, 20},
		{models.LegacyPraktikum, 20},
	}

	ids := make([]int64, 0, len(split))
	for _, item := range split {
		component, err := f.components.AddComponent(ctx, f.offeringID, legacySpec(item.legacyType, item.weight))
		require.NoError(t, err)
		ids = append(ids, component.ID)
	}
	return ids
}

func (f *gradeFixture) record(t *testing.T, studentID, componentID int64, rawScore float64) {
	t.Helper()
	_, err := f.scores.UpsertScore(context.Background(), studentID, componentID, rawScore)
	require.NoError(t, err)
}

func TestComputeFinal_WeightedAverage(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(101, f.offeringID)
	f.record(t, 101, componentIDs[0], 80)
	f.record(t, 101, componentIDs[1], 70)
	f.record(t, 101, componentIDs[2], 60)
	f.record(t, 101, componentIDs[3], 50)

	grade, err := f.grades.ComputeFinal(ctx, 101, f.offeringID)
	require.NoError(t, err)

	// 80*0.3 + 70*0.3 + 60*0.2 + 50*0.2 = 67.00
	assert.InDelta(t, 67.00, grade.FinalScore, 0.001)
	assert.Equal(t, "B-", grade.FinalLetter)
	assert.InDelta(t, 2.7, grade.FinalGPAPoint, 0.001)
	assert.Equal(t, 4, grade.ComponentsIncluded)
	assert.Equal(t, 4, grade.TotalComponents)
	assert.False(t, grade.ComputedAt.IsZero())
}

func TestComputeFinal_BoundaryScore(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()

	component, err := f.components.AddComponent(ctx, f.offeringID, legacySpec(models.LegacyUAS, 100))
	require.NoError(t, err)

	f.enrolls.enroll(101, f.offeringID)
	f.record(t, 101, component.ID, 85)

	grade, err := f.grades.ComputeFinal(ctx, 101, f.offeringID)
	require.NoError(t, err)

	assert.InDelta(t, 85.00, grade.FinalScore, 0.001)
	assert.Equal(t, "A", grade.FinalLetter)
	assert.InDelta(t, 4.0, grade.FinalGPAPoint, 0.001)
}

func TestComputeFinal_MissingScoresContributeZero(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(102, f.offeringID)
	f.record(t, 102, componentIDs[0], 90)
	f.record(t, 102, componentIDs[1], 85)

	grade, err := f.grades.ComputeFinal(ctx, 102, f.offeringID)
	require.NoError(t, err)

	// 90*0.3 + 85*0.3 + 0 + 0 = 52.50
	assert.InDelta(t, 52.50, grade.FinalScore, 0.001)
	assert.Equal(t, "D", grade.FinalLetter)
	assert.Equal(t, 2, grade.ComponentsIncluded)
	assert.Equal(t, 4, grade.TotalComponents)
	assert.True(t, IsIncomplete(grade))
}

func TestComputeFinal_UnevenWeightsRounding(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()

	split := []struct {
		legacyType models.LegacyType
		weight     float64
	}{
		{models.LegacyUTS, 33.34},
		{models.LegacyUAS, 33.33},
		{models.LegacyTugas, 33.33},
	}
	ids := make([]int64, 0, len(split))
	for _, item := range split {
		component, err := f.components.AddComponent(ctx, f.offeringID, legacySpec(item.legacyType, item.weight))
		require.NoError(t, err)
		ids = append(ids, component.ID)
	}

	f.enrolls.enroll(110, f.offeringID)
	f.record(t, 110, ids[0], 85)
	f.record(t, 110, ids[1], 85)
	// No TUGAS score recorded.

	grade, err := f.grades.ComputeFinal(ctx, 110, f.offeringID)
	require.NoError(t, err)

	// 85*0.3334 + 85*0.3333 = 56.6695, rounded to 56.67
	assert.InDelta(t, 56.67, grade.FinalScore, 0.001)
	assert.Equal(t, "C", grade.FinalLetter)
	assert.InDelta(t, 2.0, grade.FinalGPAPoint, 0.001)
	assert.Equal(t, 2, grade.ComponentsIncluded)
	assert.Equal(t, 3, grade.TotalComponents)
	assert.True(t, IsIncomplete(grade))
}

func TestComputeFinal_Idempotent(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(103, f.offeringID)
	f.record(t, 103, componentIDs[0], 77.5)
	f.record(t, 103, componentIDs[1], 81.25)
	f.record(t, 103, componentIDs[2], 66)
	f.record(t, 103, componentIDs[3], 70)

	first, err := f.grades.ComputeFinal(ctx, 103, f.offeringID)
	require.NoError(t, err)
	second, err := f.grades.ComputeFinal(ctx, 103, f.offeringID)
	require.NoError(t, err)

	assert.Equal(t, first.FinalScore, second.FinalScore)
	assert.Equal(t, first.FinalLetter, second.FinalLetter)
	assert.Equal(t, first.FinalGPAPoint, second.FinalGPAPoint)
	assert.Equal(t, first.ComponentsIncluded, second.ComponentsIncluded)
	assert.Equal(t, first.ID, second.ID, "recompute overwrites the same row")
}

func TestComputeFinal_IncompleteWeightsRejected(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()

	_, err := f.components.AddComponent(ctx, f.offeringID, legacySpec(models.LegacyUTS, 30))
	require.NoError(t, err)
	_, err = f.components.AddComponent(ctx, f.offeringID, legacySpec(models.LegacyUAS, 30))
	require.NoError(t, err)

	_, err = f.grades.ComputeFinal(ctx, 101, f.offeringID)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteWeights)
}

func TestComputeFinal_OfferingNotFound(t *testing.T) {
	f := newGradeFixture(t)

	_, err := f.grades.ComputeFinal(context.Background(), 101, 999)
	assert.ErrorIs(t, err, apperrors.ErrOfferingNotFound)
}

func TestGetFinal_CacheAside(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	f.enrolls.enroll(104, f.offeringID)
	for _, id := range componentIDs {
		f.record(t, 104, id, 75)
	}

	computed, err := f.grades.ComputeFinal(ctx, 104, f.offeringID)
	require.NoError(t, err)

	// ComputeFinal populated the cache; GetFinal serves from it.
	cached, err := f.grades.GetFinal(ctx, 104, f.offeringID)
	require.NoError(t, err)
	assert.Equal(t, computed.FinalScore, cached.FinalScore)

	// A new score write invalidates the cached entry.
	f.record(t, 104, componentIDs[0], 95)
	_, err = f.cache.Get(ctx, 104, f.offeringID)
	assert.Error(t, err, "cache entry should be gone after a score write")

	// GetFinal falls back to the store and still serves the stale row
	// until the next explicit recompute.
	stale, err := f.grades.GetFinal(ctx, 104, f.offeringID)
	require.NoError(t, err)
	assert.Equal(t, computed.FinalScore, stale.FinalScore)
}

func TestUpdateComponent_DropsCachedFinalGrades(t *testing.T) {
	f := newGradeFixture(t)
	ctx := context.Background()
	componentIDs := f.addLegacySplit(t)

	for _, studentID := range []int64{106, 107} {
		f.enrolls.enroll(studentID, f.offeringID)
		for _, id := range componentIDs {
			f.record(t, studentID, id, 80)
		}
		_, err := f.grades.ComputeFinal(ctx, studentID, f.offeringID)
		require.NoError(t, err)
		_, err = f.cache.Get(ctx, studentID, f.offeringID)
		require.NoError(t, err, "compute should populate the cache")
	}

	// Changing a weight drops every cached grade of the offering.
	newWeight := 35.0
	_, err := f.components.UpdateComponent(ctx, componentIDs[0], dto.UpdateComponentRequest{Weight: &newWeight})
	require.NoError(t, err)

	for _, studentID := range []int64{106, 107} {
		_, err := f.cache.Get(ctx, studentID, f.offeringID)
		assert.Error(t, err, "cached grade should be gone after a weight change")
	}
}

func TestGetFinal_NotFound(t *testing.T) {
	f := newGradeFixture(t)

	_, err := f.grades.GetFinal(context.Background(), 105, f.offeringID)
	assert.ErrorIs(t, err, apperrors.ErrFinalGradeNotFound)
}
