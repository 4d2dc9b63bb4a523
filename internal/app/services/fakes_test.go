package services

import (
	"context"
	"sync"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// In-memory fakes backing the service tests. They mirror the semantics the
// repositories implement in SQL, including the family lock guards.

type fakeOfferingStore struct {
	mu        sync.Mutex
	nextID    int64
	offerings map[int64]*models.CourseOffering
	// componentCount mirrors the NOT EXISTS guard ClearSystemType uses
	componentCount func(offeringID int64) int
}

func newFakeOfferingStore() *fakeOfferingStore {
	return &fakeOfferingStore{
		nextID:         1,
		offerings:      make(map[int64]*models.CourseOffering),
		componentCount: func(int64) int { return 0 },
	}
}

func (f *fakeOfferingStore) Create(_ context.Context, offering *models.CourseOffering) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.offerings {
		if existing.MataKuliahID == offering.MataKuliahID &&
			existing.Semester == offering.Semester &&
			existing.TahunAjaran == offering.TahunAjaran {
			return apperrors.ErrOfferingAlreadyExists
		}
	}
	offering.ID = f.nextID
	f.nextID++
	stored := *offering
	f.offerings[offering.ID] = &stored
	return nil
}

func (f *fakeOfferingStore) GetByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	offering, ok := f.offerings[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	copied := *offering
	if offering.SystemType != nil {
		family := *offering.SystemType
		copied.SystemType = &family
	}
	return &copied, nil
}

func (f *fakeOfferingStore) SetSystemType(_ context.Context, id int64, family models.GradingFamily) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	offering, ok := f.offerings[id]
	if !ok {
		return apperrors.ErrOfferingNotFound
	}
	if offering.SystemType != nil {
		if *offering.SystemType == family {
			return nil
		}
		return apperrors.ErrFamilyMismatch
	}
	offering.SystemType = &family
	return nil
}

func (f *fakeOfferingStore) ClearSystemType(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	offering, ok := f.offerings[id]
	if !ok {
		return apperrors.ErrOfferingNotFound
	}
	if f.componentCount(id) == 0 {
		offering.SystemType = nil
	}
	return nil
}

type fakeComponentStore struct {
	mu         sync.Mutex
	nextID     int64
	components map[int64]*models.AssessmentComponent
	scoreCount map[int64]int
}

func newFakeComponentStore() *fakeComponentStore {
	return &fakeComponentStore{
		nextID:     1,
		components: make(map[int64]*models.AssessmentComponent),
		scoreCount: make(map[int64]int),
	}
}

func (f *fakeComponentStore) Create(_ context.Context, component *models.AssessmentComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	component.ID = f.nextID
	f.nextID++
	stored := *component
	f.components[component.ID] = &stored
	return nil
}

func (f *fakeComponentStore) GetByID(_ context.Context, id int64) (*models.AssessmentComponent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	component, ok := f.components[id]
	if !ok {
		return nil, apperrors.ErrComponentNotFound
	}
	copied := *component
	return &copied, nil
}

func (f *fakeComponentStore) GetByOffering(_ context.Context, offeringID int64) ([]*models.AssessmentComponent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AssessmentComponent
	for id := int64(1); id < f.nextID; id++ {
		if component, ok := f.components[id]; ok && component.OfferingID == offeringID {
			copied := *component
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeComponentStore) Update(_ context.Context, component *models.AssessmentComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.components[component.ID]; !ok {
		return apperrors.ErrComponentNotFound
	}
	stored := *component
	f.components[component.ID] = &stored
	return nil
}

func (f *fakeComponentStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.components[id]; !ok {
		return apperrors.ErrComponentNotFound
	}
	if f.scoreCount[id] > 0 {
		return apperrors.ErrComponentInUse
	}
	delete(f.components, id)
	return nil
}

func (f *fakeComponentStore) CountScores(_ context.Context, componentID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scoreCount[componentID], nil
}

func (f *fakeComponentStore) TotalWeight(_ context.Context, offeringID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, component := range f.components {
		if component.OfferingID == offeringID {
			total += component.Weight
		}
	}
	return total, nil
}

func (f *fakeComponentStore) countForOffering(offeringID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, component := range f.components {
		if component.OfferingID == offeringID {
			count++
		}
	}
	return count
}

type scoreKey struct {
	studentID   int64
	componentID int64
}

type fakeScoreStore struct {
	mu         sync.Mutex
	nextID     int64
	scores     map[scoreKey]*models.StudentComponentScore
	components *fakeComponentStore
}

func newFakeScoreStore(components *fakeComponentStore) *fakeScoreStore {
	return &fakeScoreStore{
		nextID:     1,
		scores:     make(map[scoreKey]*models.StudentComponentScore),
		components: components,
	}
}

func (f *fakeScoreStore) Upsert(_ context.Context, score *models.StudentComponentScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scoreKey{score.StudentID, score.ComponentID}
	if existing, ok := f.scores[key]; ok {
		score.ID = existing.ID
	} else {
		score.ID = f.nextID
		f.nextID++
	}
	stored := *score
	f.scores[key] = &stored
	return nil
}

func (f *fakeScoreStore) GetByStudentAndOffering(_ context.Context, studentID, offeringID int64) ([]*models.StudentComponentScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.StudentComponentScore
	for key, score := range f.scores {
		if key.studentID != studentID {
			continue
		}
		component, ok := f.components.components[key.componentID]
		if !ok || component.OfferingID != offeringID {
			continue
		}
		copied := *score
		out = append(out, &copied)
	}
	return out, nil
}

type gradeKey struct {
	studentID  int64
	offeringID int64
}

type fakeFinalGradeStore struct {
	mu     sync.Mutex
	nextID int64
	grades map[gradeKey]*models.FinalGrade
}

func newFakeFinalGradeStore() *fakeFinalGradeStore {
	return &fakeFinalGradeStore{
		nextID: 1,
		grades: make(map[gradeKey]*models.FinalGrade),
	}
}

func (f *fakeFinalGradeStore) Upsert(_ context.Context, grade *models.FinalGrade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := gradeKey{grade.StudentID, grade.OfferingID}
	if existing, ok := f.grades[key]; ok {
		grade.ID = existing.ID
	} else {
		grade.ID = f.nextID
		f.nextID++
	}
	stored := *grade
	f.grades[key] = &stored
	return nil
}

func (f *fakeFinalGradeStore) GetByStudentAndOffering(_ context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	grade, ok := f.grades[gradeKey{studentID, offeringID}]
	if !ok {
		return nil, apperrors.ErrFinalGradeNotFound
	}
	copied := *grade
	return &copied, nil
}

func (f *fakeFinalGradeStore) GetByOffering(_ context.Context, offeringID int64, offset uint64, limit int) ([]*models.FinalGrade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.FinalGrade
	for key, grade := range f.grades {
		if key.offeringID == offeringID {
			copied := *grade
			out = append(out, &copied)
		}
	}
	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFinalGradeStore) CountByOffering(_ context.Context, offeringID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.grades {
		if key.offeringID == offeringID {
			count++
		}
	}
	return count, nil
}

type fakeEnrollments struct {
	enrolled map[gradeKey]bool
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{enrolled: make(map[gradeKey]bool)}
}

func (f *fakeEnrollments) enroll(studentID, offeringID int64) {
	f.enrolled[gradeKey{studentID, offeringID}] = true
}

func (f *fakeEnrollments) IsActivelyEnrolled(_ context.Context, studentID, offeringID int64) (bool, error) {
	return f.enrolled[gradeKey{studentID, offeringID}], nil
}

func (f *fakeEnrollments) ActiveStudentIDs(_ context.Context, offeringID int64) ([]int64, error) {
	var ids []int64
	for key := range f.enrolled {
		if key.offeringID == offeringID {
			ids = append(ids, key.studentID)
		}
	}
	return ids, nil
}

type fakeRPS struct {
	approved map[int64]bool
}

func newFakeRPS() *fakeRPS {
	return &fakeRPS{approved: make(map[int64]bool)}
}

func (f *fakeRPS) IsApproved(_ context.Context, offeringID int64) (bool, error) {
	return f.approved[offeringID], nil
}

type fakeGradeCache struct {
	mu          sync.Mutex
	entries     map[gradeKey]*models.FinalGrade
	invalidated []gradeKey
}

func newFakeGradeCache() *fakeGradeCache {
	return &fakeGradeCache{entries: make(map[gradeKey]*models.FinalGrade)}
}

func (f *fakeGradeCache) Get(_ context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	grade, ok := f.entries[gradeKey{studentID, offeringID}]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *grade
	return &copied, nil
}

func (f *fakeGradeCache) Set(_ context.Context, grade *models.FinalGrade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *grade
	f.entries[gradeKey{grade.StudentID, grade.OfferingID}] = &stored
	return nil
}

func (f *fakeGradeCache) Invalidate(_ context.Context, studentID, offeringID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := gradeKey{studentID, offeringID}
	delete(f.entries, key)
	f.invalidated = append(f.invalidated, key)
	return nil
}

func (f *fakeGradeCache) InvalidateOffering(_ context.Context, offeringID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.entries {
		if key.offeringID == offeringID {
			delete(f.entries, key)
			f.invalidated = append(f.invalidated, key)
		}
	}
	return nil
}

// fakeSnapshotRunner wires the fakes into a GradeSnapshot without any
// transaction. Tests relying on it exercise the calculator's logic, not
// snapshot isolation.
type fakeSnapshotRunner struct {
	offerings  *fakeOfferingStore
	components *fakeComponentStore
	scores     *fakeScoreStore
	grades     *fakeFinalGradeStore
}

func (f *fakeSnapshotRunner) InSnapshot(ctx context.Context, fn func(ctx context.Context, snap *GradeSnapshot) error) error {
	return fn(ctx, &GradeSnapshot{
		Offerings:  f.offerings,
		Components: f.components,
		Scores:     f.scores,
		Grades:     f.grades,
	})
}
