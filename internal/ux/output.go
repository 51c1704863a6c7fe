package ux

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out receives all user-facing CLI output.
var Out io.Writer = os.Stdout

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Step prints a timestamped progress line.
func Step(format string, args ...any) {
	fmt.Fprintf(Out, "%s[%s]%s  %s\n", Dim, timestamp(), Reset, fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal warning.
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "  %s⚠ %s%s\n", Yellow, fmt.Sprintf(format, args...), Reset)
}

// Success prints the final line of a build.
func Success(path string, files int, size int, d time.Duration) {
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s══ Wrote %s: %d files, %s in %dms ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, path, files, HumanBytes(size), d.Milliseconds(), Reset)
}

// HumanBytes formats n as B, KB or MB with one decimal.
func HumanBytes(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
