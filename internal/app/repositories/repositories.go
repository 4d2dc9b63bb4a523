package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so a repository can be rebound to a
// transaction for snapshot-consistent reads.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	OfferingRepository   *OfferingRepository
	ComponentRepository  *ComponentRepository
	ScoreRepository      *ScoreRepository
	FinalGradeRepository *FinalGradeRepository
	EnrollmentRepository *EnrollmentRepository
	RPSRepository        *RPSRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		OfferingRepository:   NewOfferingRepository(db),
		ComponentRepository:  NewComponentRepository(db),
		ScoreRepository:      NewScoreRepository(db),
		FinalGradeRepository: NewFinalGradeRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		RPSRepository:        NewRPSRepository(db),
	}
}
