// Package examscan digitizes and grades printed bubble-sheet exams, and
// generates the shuffled exam versions those sheets are printed from.
//
// # Overview
//
// The work is split across three independent components:
//
//   - rectify: computes the homography from four detected sheet corners to
//     the canonical sheet rectangle and resamples the photo with bilinear
//     interpolation.
//   - omr: samples every bubble of a known grid layout on the rectified
//     image, decides which one (if any) is filled, and scores the selections
//     against a row-specific answer key.
//   - exam: deterministically shuffles each question's alternatives from a
//     seed string and repairs the answer-key letter distribution so that no
//     letter dominates and no letter repeats four times in a row.
//
// Package pipeline glues rectify and omr together for a single scan.
//
// # Quick Start
//
//	row, err := exam.GenerateRow(questions, "nexus-2024", "A", 4)
//	// ... print row.Apply(q) for every question, persist "nexus-2024" + "A" ...
//
//	g := pipeline.NewGrader(pipeline.WithCanvas(850, 1100))
//	res, err := g.GradeRow(frame, corners, layout, row)
//	fmt.Println(res.Score, "/", res.Possible)
//
// # Determinism
//
// An exam version is identified by its base seed and row label. The seed
// hash and random generator in package exam are fixed so that answer keys of
// previously printed exams can be derived again from the same seed string.
//
// # Logging
//
// examscan is silent by default. See [SetLogger].
package examscan

// Version is the current version of the library.
const Version = "0.3.0"
