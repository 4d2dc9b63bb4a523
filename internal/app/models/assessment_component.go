package models

import "time"

// AssessmentComponent is one weighted piece of an offering's grade. It is a
// tagged variant: Family selects which identity fields are set. Legacy
// components carry LegacyType; OBE components carry SubCPMKID and optionally
// PertemuanRange. Family and identity are immutable after creation; changing
// them requires delete and recreate.
type AssessmentComponent struct {
	ID             int64         `json:"id" db:"id"`
	OfferingID     int64         `json:"offeringId" db:"offering_id"`
	Family         GradingFamily `json:"family" db:"family"`
	LegacyType     *LegacyType   `json:"legacyType,omitempty" db:"legacy_type"`
	SubCPMKID      *int64        `json:"subCpmkId,omitempty" db:"sub_cpmk_id"`
	PertemuanRange *string       `json:"pertemuanRange,omitempty" db:"pertemuan_range"`
	Weight         float64       `json:"weight" db:"weight"`
	Description    *string       `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}
