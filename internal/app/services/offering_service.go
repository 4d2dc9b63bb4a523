package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
	"github.com/pradipta/siakad/internal/pkg/validation"
)

type offeringStore interface {
	Create(ctx context.Context, offering *models.CourseOffering) error
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
}

type rpsReader interface {
	IsApproved(ctx context.Context, offeringID int64) (bool, error)
}

// OfferingService handles course offering operations
type OfferingService struct {
	offerings offeringStore
	rps       rpsReader
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(offerings offeringStore, rps rpsReader) *OfferingService {
	return &OfferingService{
		offerings: offerings,
		rps:       rps,
	}
}

// CreateOffering validates and creates a course offering
func (s *OfferingService) CreateOffering(ctx context.Context, offering *models.CourseOffering) error {
	if offering == nil {
		return apperrors.NewBadRequestError("offering is nil")
	}

	if offering.MataKuliahID <= 0 {
		return apperrors.NewBadRequestError("mataKuliahId must be positive")
	}

	if !offering.Semester.IsValid() {
		return apperrors.NewBadRequestError("semester must be GANJIL or GENAP")
	}

	if !validation.IsValidTahunAjaran(offering.TahunAjaran) {
		return apperrors.NewBadRequestError("tahunAjaran must look like 2025/2026")
	}

	// The two years must be consecutive.
	parts := strings.SplitN(offering.TahunAjaran, "/", 2)
	first, _ := strconv.Atoi(parts[0])
	second, _ := strconv.Atoi(parts[1])
	if second != first+1 {
		return apperrors.NewBadRequestError("tahunAjaran years must be consecutive")
	}

	if err := s.offerings.Create(ctx, offering); err != nil {
		return err
	}

	return nil
}

// GetOffering retrieves an offering by ID
func (s *OfferingService) GetOffering(ctx context.Context, id int64) (*models.CourseOffering, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid offering ID")
	}

	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return offering, nil
}

// IsRPSApproved reports the advisory RPS approval fact for an offering.
// Callers warn on false; grading is never blocked on it.
func (s *OfferingService) IsRPSApproved(ctx context.Context, offeringID int64) (bool, error) {
	approved, err := s.rps.IsApproved(ctx, offeringID)
	if err != nil {
		return false, fmt.Errorf("error reading RPS approval: %w", err)
	}

	return approved, nil
}
