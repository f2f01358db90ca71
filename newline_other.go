//go:build !windows

package contention

const lineEnding = "\n"
