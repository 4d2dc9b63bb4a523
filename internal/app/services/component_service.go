package services

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/validation"
)

// weightTolerance is the permitted distance from 100 for a complete weight set.
const weightTolerance = 0.01

type componentStore interface {
	Create(ctx context.Context, component *models.AssessmentComponent) error
	GetByID(ctx context.Context, id int64) (*models.AssessmentComponent, error)
	GetByOffering(ctx context.Context, offeringID int64) ([]*models.AssessmentComponent, error)
	Update(ctx context.Context, component *models.AssessmentComponent) error
	Delete(ctx context.Context, id int64) error
	TotalWeight(ctx context.Context, offeringID int64) (float64, error)
	CountScores(ctx context.Context, componentID int64) (int, error)
}

// OfferingGradeCache drops every cached final grade of an offering after a
// weight configuration change.
type OfferingGradeCache interface {
	InvalidateOffering(ctx context.Context, offeringID int64) error
}

type familyLocker interface {
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	SetSystemType(ctx context.Context, id int64, family models.GradingFamily) error
	ClearSystemType(ctx context.Context, id int64) error
}

// ComponentService owns the assessment component registry of each offering
// and derives its weight readiness.
type ComponentService struct {
	components componentStore
	offerings  familyLocker
	rps        rpsReader
	cache      OfferingGradeCache
	logger     zerolog.Logger
}

// NewComponentService creates a new component service instance
func NewComponentService(components componentStore, offerings familyLocker, rps rpsReader, cache OfferingGradeCache, logger zerolog.Logger) *ComponentService {
	return &ComponentService{
		components: components,
		offerings:  offerings,
		rps:        rps,
		cache:      cache,
		logger:     logger,
	}
}

// ComponentSpec is the validated input for AddComponent
type ComponentSpec struct {
	Family         models.GradingFamily
	Weight         float64
	LegacyType     *models.LegacyType
	SubCPMKID      *int64
	PertemuanRange *string
	Description    *string
}

// validateSpec checks the tagged-variant shape of a component spec
func validateSpec(spec ComponentSpec) error {
	if !spec.Family.IsValid() {
		return apperrors.NewInvalidComponentError("family", "family must be LEGACY or OBE")
	}

	if !validation.IsValidWeight(spec.Weight) {
		return apperrors.NewInvalidComponentError("weight", "weight must be between 0 and 100")
	}

	switch spec.Family {
	case models.FamilyLegacy:
		if spec.LegacyType == nil {
			return apperrors.NewInvalidComponentError("legacyType", "legacy components require legacyType")
		}
		if !spec.LegacyType.IsValid() {
			return apperrors.NewInvalidComponentError("legacyType", "unknown legacy component type")
		}
		if spec.SubCPMKID != nil {
			return apperrors.NewInvalidComponentError("subCpmkId", "legacy components may not reference a Sub-CPMK")
		}
		if spec.PertemuanRange != nil {
			return apperrors.NewInvalidComponentError("pertemuanRange", "pertemuanRange applies to OBE components only")
		}
	case models.FamilyOBE:
		if spec.SubCPMKID == nil || *spec.SubCPMKID <= 0 {
			return apperrors.NewInvalidComponentError("subCpmkId", "OBE components require a valid subCpmkId")
		}
		if spec.LegacyType != nil {
			return apperrors.NewInvalidComponentError("legacyType", "OBE components may not carry a legacy type")
		}
		if spec.PertemuanRange != nil && !validation.IsValidPertemuanRange(*spec.PertemuanRange) {
			return apperrors.NewInvalidComponentError("pertemuanRange", "pertemuanRange must look like 1-7")
		}
	}

	return nil
}

// AddComponent validates the component spec against the offering's grading family and
// creates the component. The first component fixes the family.
func (s *ComponentService) AddComponent(ctx context.Context, offeringID int64, spec ComponentSpec) (*models.AssessmentComponent, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	offering, err := s.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	if offering.SystemType == nil {
		if err := s.offerings.SetSystemType(ctx, offeringID, spec.Family); err != nil {
			return nil, err
		}
	} else if *offering.SystemType != spec.Family {
		return nil, fmt.Errorf("%w: offering uses %s", apperrors.ErrFamilyMismatch, *offering.SystemType)
	}

	component := &models.AssessmentComponent{
		OfferingID:     offeringID,
		Family:         spec.Family,
		LegacyType:     spec.LegacyType,
		SubCPMKID:      spec.SubCPMKID,
		PertemuanRange: spec.PertemuanRange,
		Weight:         spec.Weight,
		Description:    spec.Description,
	}

	if err := s.components.Create(ctx, component); err != nil {
		return nil, err
	}

	s.dropCachedGrades(ctx, offeringID)

	return component, nil
}

// dropCachedGrades invalidates every cached final grade of an offering.
// Cache failures are logged, never surfaced; Postgres stays authoritative.
func (s *ComponentService) dropCachedGrades(ctx context.Context, offeringID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOffering(ctx, offeringID); err != nil {
		s.logger.Warn().Err(err).
			Int64("offeringId", offeringID).
			Msg("Failed to invalidate cached final grades")
	}
}

// UpdateComponent patches the mutable fields of a component. Family and
// identity cannot change; that requires delete and recreate.
func (s *ComponentService) UpdateComponent(ctx context.Context, id int64, patch dto.UpdateComponentRequest) (*models.AssessmentComponent, error) {
	component, err := s.components.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Weight != nil {
		if !validation.IsValidWeight(*patch.Weight) {
			return nil, apperrors.NewInvalidComponentError("weight", "weight must be between 0 and 100")
		}
		component.Weight = *patch.Weight
	}

	if patch.PertemuanRange != nil {
		if component.Family != models.FamilyOBE {
			return nil, apperrors.NewInvalidComponentError("pertemuanRange", "pertemuanRange applies to OBE components only")
		}
		if !validation.IsValidPertemuanRange(*patch.PertemuanRange) {
			return nil, apperrors.NewInvalidComponentError("pertemuanRange", "pertemuanRange must look like 1-7")
		}
		component.PertemuanRange = patch.PertemuanRange
	}

	if patch.Description != nil {
		component.Description = patch.Description
	}

	if err := s.components.Update(ctx, component); err != nil {
		return nil, err
	}

	s.dropCachedGrades(ctx, component.OfferingID)

	return component, nil
}

// RemoveComponent deletes a component with no recorded scores. When the last
// component of an offering goes, the family lock is released.
func (s *ComponentService) RemoveComponent(ctx context.Context, id int64) error {
	component, err := s.components.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.components.CountScores(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d score rows recorded", apperrors.ErrComponentInUse, count)
	}

	if err := s.components.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.offerings.ClearSystemType(ctx, component.OfferingID); err != nil {
		return fmt.Errorf("error releasing family lock: %w", err)
	}

	s.dropCachedGrades(ctx, component.OfferingID)

	return nil
}

// ListComponents retrieves all components of an offering
func (s *ComponentService) ListComponents(ctx context.Context, offeringID int64) ([]*models.AssessmentComponent, error) {
	if _, err := s.offerings.GetByID(ctx, offeringID); err != nil {
		return nil, err
	}

	return s.components.GetByOffering(ctx, offeringID)
}

// TotalWeight sums the configured weights of an offering
func (s *ComponentService) TotalWeight(ctx context.Context, offeringID int64) (float64, error) {
	return s.components.TotalWeight(ctx, offeringID)
}

// IsReadyForGrading reports whether the offering's weights sum to 100
// within tolerance, along with the current total
func (s *ComponentService) IsReadyForGrading(ctx context.Context, offeringID int64) (bool, float64, error) {
	total, err := s.components.TotalWeight(ctx, offeringID)
	if err != nil {
		return false, 0, err
	}

	return math.Abs(total-100) <= weightTolerance, total, nil
}

// WeightSummary builds the per-offering weight report surfaced to grading UIs
func (s *ComponentService) WeightSummary(ctx context.Context, offeringID int64) (*dto.WeightSummaryResponse, error) {
	if _, err := s.offerings.GetByID(ctx, offeringID); err != nil {
		return nil, err
	}

	components, err := s.components.GetByOffering(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	summary := &dto.WeightSummaryResponse{
		OfferingID:     offeringID,
		ComponentCount: len(components),
		Components:     make([]dto.ComponentWeight, 0, len(components)),
	}

	for _, c := range components {
		summary.TotalWeight += c.Weight
		summary.Components = append(summary.Components, dto.ComponentWeight{
			ComponentID: c.ID,
			Label:       componentLabel(c),
			Weight:      c.Weight,
		})
	}

	summary.IsReadyForGrading = math.Abs(summary.TotalWeight-100) <= weightTolerance

	approved, err := s.rps.IsApproved(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("error reading RPS approval: %w", err)
	}
	summary.RPSApproved = approved

	return summary, nil
}

// componentLabel names a component for summaries and logs
func componentLabel(c *models.AssessmentComponent) string {
	if c.Family == models.FamilyLegacy && c.LegacyType != nil {
		return string(*c.LegacyType)
	}
	if c.SubCPMKID != nil {
		return fmt.Sprintf("Sub-CPMK %d", *c.SubCPMKID)
	}
	return fmt.Sprintf("Component %d", c.ID)
}
