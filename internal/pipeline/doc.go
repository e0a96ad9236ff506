// Package pipeline runs frame analysis jobs: a worker pool fetches broadcast
// frames, runs the bar and scoreboard detectors, and merges the assembled
// snapshot into the match timeline.
package pipeline
