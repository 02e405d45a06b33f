// Package logtail reads the last lines of tuner's log file.
//
// The TUI owns the terminal, so runtime diagnostics go to a file under the
// XDG state directory. The logs subcommand uses Read to show the tail of
// that file, optionally filtered by a substring.
package logtail
