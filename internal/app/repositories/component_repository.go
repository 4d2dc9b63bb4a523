package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// ComponentRepository handles database operations for assessment components
type ComponentRepository struct {
	db Querier
}

// NewComponentRepository creates a new component repository
func NewComponentRepository(db Querier) *ComponentRepository {
	return &ComponentRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ComponentRepository) WithTx(tx pgx.Tx) *ComponentRepository {
	return &ComponentRepository{db: tx}
}

const componentColumns = `id, offering_id, family, legacy_type, sub_cpmk_id, pertemuan_range, weight, description, created_at, updated_at`

func scanComponent(row pgx.Row) (*models.AssessmentComponent, error) {
	var c models.AssessmentComponent
	err := row.Scan(
		&c.ID,
		&c.OfferingID,
		&c.Family,
		&c.LegacyType,
		&c.SubCPMKID,
		&c.PertemuanRange,
		&c.Weight,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new assessment component
func (r *ComponentRepository) Create(ctx context.Context, component *models.AssessmentComponent) error {
	query := `
		INSERT INTO assessment_components (offering_id, family, legacy_type, sub_cpmk_id, pertemuan_range, weight, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		component.OfferingID,
		component.Family,
		component.LegacyType,
		component.SubCPMKID,
		component.PertemuanRange,
		component.Weight,
		component.Description,
	).Scan(&component.ID, &component.CreatedAt, &component.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating assessment component: %w", err)
	}

	return nil
}

// GetByID retrieves an assessment component by ID
func (r *ComponentRepository) GetByID(ctx context.Context, id int64) (*models.AssessmentComponent, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM assessment_components
		WHERE id = $1
	`

	component, err := scanComponent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComponentNotFound
		}
		return nil, fmt.Errorf("error retrieving assessment component: %w", err)
	}

	return component, nil
}

// GetByOffering retrieves all assessment components of an offering
func (r *ComponentRepository) GetByOffering(ctx context.Context, offeringID int64) ([]*models.AssessmentComponent, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM assessment_components
		WHERE offering_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving assessment components: %w", err)
	}
	defer rows.Close()

	var components []*models.AssessmentComponent
	for rows.Next() {
		component, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return components, nil
}

// Update persists the mutable fields of a component. Family and identity
// columns are never touched here.
func (r *ComponentRepository) Update(ctx context.Context, component *models.AssessmentComponent) error {
	query := `
		UPDATE assessment_components
		SET weight = $1, pertemuan_range = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		component.Weight, component.PertemuanRange, component.Description, component.ID)
	if err != nil {
		return fmt.Errorf("error updating assessment component: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrComponentNotFound
	}

	return nil
}

// Delete removes a component, refusing while any score rows reference it
func (r *ComponentRepository) Delete(ctx context.Context, id int64) error {
	var hasScores bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM student_component_scores WHERE component_id = $1)`,
		id).Scan(&hasScores)
	if err != nil {
		return fmt.Errorf("error checking component scores: %w", err)
	}

	if hasScores {
		return apperrors.ErrComponentInUse
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM assessment_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assessment component: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrComponentNotFound
	}

	return nil
}

// TotalWeight sums the weights of all components of an offering
func (r *ComponentRepository) TotalWeight(ctx context.Context, offeringID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(weight), 0) FROM assessment_components WHERE offering_id = $1`,
		offeringID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing component weights: %w", err)
	}

	return total, nil
}

// CountScores returns the number of score rows recorded against a component
func (r *ComponentRepository) CountScores(ctx context.Context, componentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM student_component_scores WHERE component_id = $1`,
		componentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting component scores: %w", err)
	}

	return count, nil
}
