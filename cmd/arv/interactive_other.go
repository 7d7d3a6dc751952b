//go:build !windows

package main

// enableVT is a no-op outside Windows; other terminals interpret ANSI escape
// sequences natively.
func enableVT() {}
