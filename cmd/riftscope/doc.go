// Command riftscope analyzes MOBA broadcast frames: champion-select
// detection, resource bar reading, scoreboard OCR, and the match timeline
// store that collects the results.
package main
