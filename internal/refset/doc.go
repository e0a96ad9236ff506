// Package refset manages champion reference imagery: labeled image sets per
// asset source, the provider contracts that supply them, and a lazily
// populated cache callers hold for the lifetime of a matching session.
package refset
