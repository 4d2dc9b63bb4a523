package models

// CourseOffering identifies a course instance being graded in a given
// semester and academic year. The (course, semester, year) key is immutable
// once created. SystemType is nil until the first assessment component fixes
// the offering's grading family.
type CourseOffering struct {
	ID           int64          `json:"id" db:"id"`
	MataKuliahID int64          `json:"mataKuliahId" db:"mata_kuliah_id"`
	Semester     Semester       `json:"semester" db:"semester"`
	TahunAjaran  string         `json:"tahunAjaran" db:"tahun_ajaran"`
	SystemType   *GradingFamily `json:"systemType,omitempty" db:"system_type"`
}
