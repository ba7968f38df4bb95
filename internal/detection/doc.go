// Package detection turns source images into described line segments.
//
// It is the glue between the image helpers and the probabilistic Hough
// detector:
//
//  1. Optionally crop the source to a region of interest
//  2. Build the 8-bit edge mask, either with Canny or by binarizing a
//     precomputed mask at MaskLevel
//  3. Run hough.Detect on the mask
//  4. Map segments back to source coordinates and describe them (length,
//     angle, votes, color sampled at the midpoint)
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Regions use inclusive top-left and exclusive bottom-right
//
// Angles are measured from the positive X axis toward positive Y, so a
// segment walking down the image has a positive angle.
//
// # Accumulator
//
// The vote grid returned with each detection is sized to the mask the
// detector saw, which is the region when one is given. Cells belonging to
// accepted segments have been rolled back, so the grid shows the support
// that was left unexplained.
package detection
