// Package omr reads filled bubbles from rectified answer sheets and scores
// them against a row-specific answer key.
//
// The scorer works in canonical sheet coordinates only. Photographs are
// straightened first with package rectify; the bubble layout (GridSpec) is
// supplied by whatever laid out the printed sheet.
//
// A question with no clearly filled bubble, or with two bubbles too close
// in darkness to tell apart, is reported as unanswered rather than guessed.
package omr
