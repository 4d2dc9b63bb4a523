package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/repositories"
	"github.com/pradipta/siakad/internal/db"
)

// Read/write surfaces the grade calculator needs inside one snapshot.
type offeringGetter interface {
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
}

type componentLister interface {
	GetByOffering(ctx context.Context, offeringID int64) ([]*models.AssessmentComponent, error)
}

type scoreLister interface {
	GetByStudentAndOffering(ctx context.Context, studentID, offeringID int64) ([]*models.StudentComponentScore, error)
}

type finalGradeStore interface {
	Upsert(ctx context.Context, grade *models.FinalGrade) error
	GetByStudentAndOffering(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error)
	GetByOffering(ctx context.Context, offeringID int64, offset uint64, limit int) ([]*models.FinalGrade, error)
	CountByOffering(ctx context.Context, offeringID int64) (int64, error)
}

// GradeSnapshot bundles the stores visible within one consistent snapshot.
type GradeSnapshot struct {
	Offerings  offeringGetter
	Components componentLister
	Scores     scoreLister
	Grades     finalGradeStore
}

// SnapshotRunner executes a function against a consistent view of the
// grading tables, so a concurrent weight change cannot produce a grade
// computed against a mixed pre/post-change weight set.
type SnapshotRunner interface {
	InSnapshot(ctx context.Context, fn func(ctx context.Context, snap *GradeSnapshot) error) error
}

// PGSnapshotRunner implements SnapshotRunner with a single database
// transaction and transaction-bound repositories.
type PGSnapshotRunner struct {
	db *db.PostgresDB
}

// NewPGSnapshotRunner creates a snapshot runner over the given database
func NewPGSnapshotRunner(database *db.PostgresDB) *PGSnapshotRunner {
	return &PGSnapshotRunner{db: database}
}

// InSnapshot runs fn inside one transaction
func (r *PGSnapshotRunner) InSnapshot(ctx context.Context, fn func(ctx context.Context, snap *GradeSnapshot) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		snap := &GradeSnapshot{
			Offerings:  repositories.NewOfferingRepository(tx),
			Components: repositories.NewComponentRepository(tx),
			Scores:     repositories.NewScoreRepository(tx),
			Grades:     repositories.NewFinalGradeRepository(tx),
		}
		return fn(ctx, snap)
	})
}
