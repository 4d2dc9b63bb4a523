// Package seed creates demonstration data for development environments.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/pradipta/siakad/internal/app/models"
	appRepos "github.com/pradipta/siakad/internal/app/repositories"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// CreateDefaultData seeds one legacy-family demo offering with a complete
// weight configuration, a handful of enrollments and an approved RPS
// document. Safe to call repeatedly.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	offeringRepo := appRepos.NewOfferingRepository(dbPool)
	componentRepo := appRepos.NewComponentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo offering)...")

	offering := &appModels.CourseOffering{
		MataKuliahID: 1,
		Semester:     appModels.SemesterGanjil,
		TahunAjaran:  "2025/2026",
	}

	err := offeringRepo.Create(ctx, offering)
	if errors.Is(err, apperrors.ErrOfferingAlreadyExists) {
		lgr.Debug().Msg("Demo offering already exists, skipping seed")
		return nil
	}
	if err != nil {
		return err
	}

	// Standard legacy split: UTS 30, UAS 30, TUGAS 20, PRAKTIKUM 20
	legacySplit := []struct {
		legacyType appModels.LegacyType
		weight     float64
	}{
		{appModels.LegacyUTS, 30},
		{appModels.LegacyUAS, 30},
		{appModels.LegacyTugas, 20},
		{appModels.LegacyPraktikum, 20},
	}

	family := appModels.FamilyLegacy
	if err := offeringRepo.SetSystemType(ctx, offering.ID, family); err != nil {
		return err
	}

	for _, item := range legacySplit {
		legacyType := item.legacyType
		component := &appModels.AssessmentComponent{
			OfferingID: offering.ID,
			Family:     family,
			LegacyType: &legacyType,
			Weight:     item.weight,
		}
		if err := componentRepo.Create(ctx, component); err != nil {
			return err
		}
	}

	for studentID := int64(1001); studentID <= 1005; studentID++ {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO enrollments (student_id, offering_id, status)
			VALUES ($1, $2, 'ACTIVE')
			ON CONFLICT (student_id, offering_id) DO NOTHING`,
			studentID, offering.ID)
		if err != nil {
			return err
		}
	}

	_, err = dbPool.Exec(ctx, `
		INSERT INTO rps_documents (offering_id, approved, approved_at)
		VALUES ($1, TRUE, CURRENT_TIMESTAMP)
		ON CONFLICT (offering_id) DO NOTHING`,
		offering.ID)
	if err != nil {
		return err
	}

	lgr.Info().
		Int64("offeringId", offering.ID).
		Msg("Demo offering seeded with legacy components and enrollments")

	return nil
}
