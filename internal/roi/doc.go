// Package roi resolves stored region-of-interest templates into absolute
// pixel rectangles for a frame of any resolution.
//
// A template maps region names to polygons whose points are expressed either
// normalized to [0,1] or in pixels of a named reference resolution. Resolve
// applies a fixed precedence (reference resolution wins over the normalized
// heuristic) so the same template document yields identical geometry on every
// caller. The package is pure stdlib image math; detectors crop with the
// rectangles it returns.
package roi
