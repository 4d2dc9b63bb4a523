package services

// Services defined in this package:
// - OfferingService: course offering keys and the grading-family lock
// - ComponentService: assessment component registry and weight validation
// - ScoreService: per-student component score writes, enrollment-gated
// - GradeService: final grade computation over a consistent snapshot
// - RecomputeService: single and batch final grade recomputation
