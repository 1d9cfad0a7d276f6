// Package ui holds the CLI logging and output helpers.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var DebugEnabled bool

// Debugf prints messages only if DebugEnabled is true
func Debugf(format string, args ...interface{}) {
	if DebugEnabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Infof prints messages always (standard output)
func Infof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
)

// PrintSuccess prints a green status line.
func PrintSuccess(format string, args ...interface{}) {
	green.Printf("✓ "+format+"\n", args...)
}

// PrintWarning prints a yellow status line.
func PrintWarning(format string, args ...interface{}) {
	yellow.Printf("! "+format+"\n", args...)
}

// PrintFailure prints a red status line.
func PrintFailure(format string, args ...interface{}) {
	red.Printf("✗ "+format+"\n", args...)
}
