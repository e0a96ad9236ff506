// Package timeline owns per-match persisted state: the immutable draft
// recorded at champion select plus an ordered, key-addressable collection of
// live-game snapshots.
//
// A match moves through start → snapshot* → end. Start writes the draft and
// an empty "startGame" snapshot, MergeSnapshot deep-merges partial fragments
// under a canonical MM:SS key, and End freezes a deep copy of the latest
// snapshot under "endGame" together with the winning side. Matches persist as
// one JSON document per filesystem-safe slug of the match title.
//
// The store serializes mutations per slug: an in-process mutex guards against
// concurrent goroutines and a flock file lock guards against concurrent
// processes, so a merge is never a lost update.
package timeline
