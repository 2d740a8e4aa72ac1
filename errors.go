package examscan

import "errors"

// Error taxonomy shared by the rectify, omr and exam packages.
// Packages wrap these with context; match them with errors.Is.
var (
	// ErrDegenerateGeometry is returned when four corner points do not form a
	// valid quadrilateral (duplicate or collinear points, singular system).
	// The capture must be retaken; the core never approximates.
	ErrDegenerateGeometry = errors.New("examscan: degenerate geometry")

	// ErrInvalidGridSpec is returned when a bubble grid layout does not fit the
	// rectified image or is malformed. It is a configuration error.
	ErrInvalidGridSpec = errors.New("examscan: invalid grid spec")

	// ErrNoCorrectOption describes a question that has no alternative marked
	// correct. Such questions are skipped by the balancer and cannot be scored.
	ErrNoCorrectOption = errors.New("examscan: question has no correct option")
)
