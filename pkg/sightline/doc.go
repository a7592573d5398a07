// Package sightline computes viewing geometry for seating rows in a
// screening room.
//
// # Overview
//
// Given a list of [SeatingRow] values and a [ScreenConfig], [Analyze]
// produces one [RowAnalysis] per row, ordered nearest-to-screen first:
//
//   - Vertical viewing angle (VVA): signed angle from the horizontal at the
//     viewer's eye to the screen reference point. Positive means looking up.
//   - Horizontal viewing angle (HVA): angle subtended by the screen width.
//   - Sightline clearance: how far the line from the eye to the screen
//     reference passes above the head of the nearest row in front.
//   - Overall status: the worst of the vertical band, the horizontal band
//     and the sightline rule, plus one note per violated criterion.
//
// # Units
//
// Row distances are in feet. Ear heights, riser heights, screen dimensions
// and clearances are in inches. Angles are in degrees.
//
// # Severity
//
// Every criterion is classified into a [Status]. The order, worst first, is
// fail > warning > marginal > acceptable > optimal. A blocked sightline is
// always fail.
//
// # Validation
//
// Input is validated as a batch before anything is computed. A non-positive
// distance, an ear or riser height outside the configured bounds, or a
// duplicate row id rejects the whole batch with an INVALID_ROW error; a
// malformed screen or threshold configuration is rejected with
// INVALID_SCREEN. Suspicious but computable input (two rows at the same
// distance, a riser lower than the row in front, implausible angles) is
// reported through [Report.Advisories] instead.
//
// # Concurrency
//
// [Analyze] and [Evaluate] are pure: they read their arguments, allocate
// their own output and share no state, so they are safe to call from any
// number of goroutines.
package sightline
