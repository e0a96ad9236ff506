// Package champselect identifies the drafted champions on a champion-select
// frame by feature matching each seat crop against a reference image set.
package champselect
