// Package frame decodes broadcast frames into OpenCV matrices and defines
// the contract for fetching frames from an upstream source.
package frame
