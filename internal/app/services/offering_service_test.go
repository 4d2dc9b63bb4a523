package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

func TestCreateOffering(t *testing.T) {
	offerings := newFakeOfferingStore()
	svc := NewOfferingService(offerings, newFakeRPS())
	ctx := context.Background()

	offering := &models.CourseOffering{
		MataKuliahID: 42,
		Semester:     models.SemesterGanjil,
		TahunAjaran:  "2025/2026",
	}
	require.NoError(t, svc.CreateOffering(ctx, offering))
	assert.NotZero(t, offering.ID)

	// Same course, semester and academic year is a conflict.
	duplicate := &models.CourseOffering{
		MataKuliahID: 42,
		Semester:     models.SemesterGanjil,
		TahunAjaran:  "2025/2026",
	}
	err := svc.CreateOffering(ctx, duplicate)
	assert.ErrorIs(t, err, apperrors.ErrOfferingAlreadyExists)

	// A different semester of the same course is fine.
	genap := &models.CourseOffering{
		MataKuliahID: 42,
		Semester:     models.SemesterGenap,
		TahunAjaran:  "2025/2026",
	}
	assert.NoError(t, svc.CreateOffering(ctx, genap))
}

func TestCreateOffering_Validation(t *testing.T) {
	svc := NewOfferingService(newFakeOfferingStore(), newFakeRPS())
	ctx := context.Background()

	tests := []struct {
		name     string
		offering *models.CourseOffering
	}{
		{"nil offering", nil},
		{"missing course", &models.CourseOffering{Semester: models.SemesterGanjil, TahunAjaran: "2025/2026"}},
		{"bad semester", &models.CourseOffering{MataKuliahID: 1, Semester: "SUMMER", TahunAjaran: "2025/2026"}},
		{"malformed tahun ajaran", &models.CourseOffering{MataKuliahID: 1, Semester: models.SemesterGanjil, TahunAjaran: "2025-2026"}},
		{"non-consecutive years", &models.CourseOffering{MataKuliahID: 1, Semester: models.SemesterGanjil, TahunAjaran: "2025/2027"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateOffering(ctx, tc.offering)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestGetOffering(t *testing.T) {
	offerings := newFakeOfferingStore()
	svc := NewOfferingService(offerings, newFakeRPS())
	ctx := context.Background()

	offering := &models.CourseOffering{
		MataKuliahID: 7,
		Semester:     models.SemesterGenap,
		TahunAjaran:  "2026/2027",
	}
	require.NoError(t, offerings.Create(ctx, offering))

	got, err := svc.GetOffering(ctx, offering.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.MataKuliahID)
	assert.Nil(t, got.SystemType, "family is undetermined before the first component")

	_, err = svc.GetOffering(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrOfferingNotFound)
}

func TestIsRPSApproved(t *testing.T) {
	offerings := newFakeOfferingStore()
	rps := newFakeRPS()
	svc := NewOfferingService(offerings, rps)
	ctx := context.Background()

	approved, err := svc.IsRPSApproved(ctx, 1)
	require.NoError(t, err)
	assert.False(t, approved)

	rps.approved[1] = true
	approved, err = svc.IsRPSApproved(ctx, 1)
	require.NoError(t, err)
	assert.True(t, approved)
}
