package models

// RoleType defines the user role type carried in JWT claims
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// Semester identifies the half of the academic year
type Semester string

const (
	SemesterGanjil Semester = "GANJIL"
	SemesterGenap  Semester = "GENAP"
)

// IsValid reports whether s is a known semester value
func (s Semester) IsValid() bool {
	return s == SemesterGanjil || s == SemesterGenap
}

// GradingFamily distinguishes the two parallel grading paradigms. All
// components of one offering belong to the same family.
type GradingFamily string

const (
	FamilyLegacy GradingFamily = "LEGACY"
	FamilyOBE    GradingFamily = "OBE"
)

// IsValid reports whether f is a known grading family
func (f GradingFamily) IsValid() bool {
	return f == FamilyLegacy || f == FamilyOBE
}

// LegacyType enumerates the traditional assessment component kinds
type LegacyType string

const (
	LegacyUTS       LegacyType = "UTS"
	LegacyUAS       LegacyType = "UAS"
	LegacyPraktikum LegacyType = "PRAKTIKUM"
	LegacyTugas     LegacyType = "TUGAS"
	LegacySoftSkill LegacyType = "SOFTSKILL"
)

// IsValid reports whether t is a known legacy component type
func (t LegacyType) IsValid() bool {
	switch t {
	case LegacyUTS, LegacyUAS, LegacyPraktikum, LegacyTugas, LegacySoftSkill:
		return true
	}
	return false
}

// EnrollmentStatus is the lifecycle state of a student's enrollment
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)
