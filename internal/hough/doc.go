// Package hough implements the progressive probabilistic Hough transform
// for line segment detection in binary edge images.
//
// # Algorithm
//
// Foreground pixels of the edge image are visited in random order, each
// drawn once from a shrinking pool:
//
//  1. Voting: the pixel votes into every angle bin of a polar
//     (angle, distance) accumulator. If no bin has reached the threshold
//     the next pixel is drawn.
//  2. Walking: from the pixel, the line of the strongest bin is followed in
//     both directions with 16.16 fixed-point steps until the image border
//     or until more than MaxGap consecutive inactive pixels are crossed.
//  3. Validation: the two farthest active pixels are kept as endpoints if
//     they span at least MinLineLength along x or y.
//  4. Commit: the walk is repeated out to the endpoints. Every active pixel
//     on it is removed from further consideration, and for accepted
//     segments its earlier votes are taken back out of the accumulator.
//
// The run ends when the pool is empty or MaxLines segments were accepted.
//
// # Accumulator
//
// The accumulator has round(π/Theta) rows and round((2(W+H)+1)/Rho)
// columns. Votes and rollbacks share one projection with round-half-to-even
// rounding, and only pixels that voted are rolled back, so no cell ever
// goes below zero.
//
// # State
//
// All mutable state (activity mask, pixel pool, accumulator, random source)
// belongs to a single Detect call. Detect is safe to call concurrently on
// different images; with a fixed Params.Seed it is deterministic.
package hough
