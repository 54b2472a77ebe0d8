// Package uicolor provides small colored-output helpers for the example
// CLIs' terminal output.
package uicolor

import "github.com/fatih/color"

func sprint(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()(s)
}

// Cyan renders s in bright cyan.
func Cyan(s string) string { return sprint(color.FgHiCyan, s) }

// Green renders s in bright green.
func Green(s string) string { return sprint(color.FgHiGreen, s) }

// Magenta renders s in bright magenta.
func Magenta(s string) string { return sprint(color.FgHiMagenta, s) }

// Yellow renders s in bright yellow.
func Yellow(s string) string { return sprint(color.FgHiYellow, s) }

// Red renders s in bright red.
func Red(s string) string { return sprint(color.FgHiRed, s) }
