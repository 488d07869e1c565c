// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
)

// ANSI escapes for plain terminal output, set by InitializeColors
var (
	Green   string
	Info    string
	Warning string
	Error   string
	Reset   string
)

// ColorScheme holds the termui colors of the bench chart
type ColorScheme struct {
	Bars      []ui.Color
	Labels    ui.Color
	Numbers   ui.Color
	Border    ui.Color
	Title     ui.Color
	TextMuted ui.Color
}

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

var (
	currentColorScheme *ColorScheme
	detectedMode       TerminalMode
)

// detectTerminalMode attempts to detect whether the terminal is in light or dark mode
func detectTerminalMode() TerminalMode {
	// COLORFGBG format is typically "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			switch parts[len(parts)-1] {
			case "0", "8", "16":
				return TerminalModeDark
			case "15", "7", "255":
				return TerminalModeLight
			}
		}
	}

	for _, name := range []string{"TERM_THEME", "THEME"} {
		theme := strings.ToLower(os.Getenv(name))
		if strings.Contains(theme, "dark") {
			return TerminalModeDark
		} else if strings.Contains(theme, "light") {
			return TerminalModeLight
		}
	}

	// Default to dark mode as it's more common in terminals
	return TerminalModeDark
}

func createLightColorScheme() *ColorScheme {
	return &ColorScheme{
		Bars:      []ui.Color{ui.Color(4), ui.ColorRed, ui.Color(2)},
		Labels:    ui.ColorBlack,
		Numbers:   ui.ColorWhite,
		Border:    ui.Color(8),
		Title:     ui.Color(4),
		TextMuted: ui.Color(240),
	}
}

func createDarkColorScheme() *ColorScheme {
	return &ColorScheme{
		Bars:      []ui.Color{ui.Color(14), ui.Color(9), ui.Color(10)},
		Labels:    ui.ColorWhite,
		Numbers:   ui.ColorBlack,
		Border:    ui.Color(240),
		Title:     ui.Color(14),
		TextMuted: ui.Color(245),
	}
}

// InitializeColors detects terminal mode and sets up the color scheme and
// the ANSI escapes
func InitializeColors() {
	detectedMode = detectTerminalMode()

	switch detectedMode {
	case TerminalModeLight:
		currentColorScheme = createLightColorScheme()
	default:
		currentColorScheme = createDarkColorScheme()
	}
	Green, Info, Warning, Error, Reset = GetANSIColors()
}

// GetColorScheme returns the current color scheme
func GetColorScheme() *ColorScheme {
	if currentColorScheme == nil {
		InitializeColors()
	}
	return currentColorScheme
}

// ANSI color codes for terminal output (adaptive to mode)
func GetANSIColors() (success, info, warning, error, reset string) {
	// Darker colors on light backgrounds, brighter ones on dark
	if detectedMode == TerminalModeLight {
		success = "\033[32m"
		info = "\033[34m"
		warning = "\033[33m"
		error = "\033[31m"
	} else {
		success = "\033[92m"
		info = "\033[96m"
		warning = "\033[93m"
		error = "\033[91m"
	}

	reset = "\033[0m"
	return
}

// StyleBorder is the chart border style
func StyleBorder() ui.Style {
	return ui.NewStyle(GetColorScheme().Border)
}

// StyleTitle is the chart title style
func StyleTitle() ui.Style {
	return ui.NewStyle(GetColorScheme().Title, ui.ColorClear, ui.ModifierBold)
}

// StyleTextMuted is used for footnotes
func StyleTextMuted() ui.Style {
	return ui.NewStyle(GetColorScheme().TextMuted)
}
