//go:build windows

package contention

const lineEnding = "\r\n"
