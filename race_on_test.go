//go:build race

package contention

// raceEnabled skips the deliberately racy Unsynced cases, which the race
// detector would rightly report.
const raceEnabled = true
