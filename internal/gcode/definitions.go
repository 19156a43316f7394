// Package gcode provides a lookup dictionary for common CNC program words:
// G and M codes (including DOOSAN, HYUNDAI-WIA and SMEC vendor-specific M
// codes) and single-letter axis/parameter words.
package gcode

import (
	"regexp"
	"strings"
)

// Definition describes one G-code, M-code or parameter word.
type Definition struct {
	Code        string
	Description string
	Details     string
	Brand       string // empty for standard codes
}

// definitions holds canonical codes only; lookup normalizes zero-padded
// forms (G01 -> G1, M03 -> M3) before matching.
var definitions = []Definition{
	// G codes
	{Code: "G0", Description: "Rapid positioning", Details: "Move at maximum traverse rate"},
	{Code: "G1", Description: "Linear interpolation", Details: "Move at the programmed feed rate (F)"},
	{Code: "G2", Description: "Circular interpolation, clockwise", Details: "Requires I,J,K or R"},
	{Code: "G3", Description: "Circular interpolation, counterclockwise", Details: "Requires I,J,K or R"},
	{Code: "G4", Description: "Dwell", Details: "Pause for the time given by P"},
	{Code: "G17", Description: "XY plane selection", Details: "For arcs and drilling cycles"},
	{Code: "G18", Description: "XZ plane selection", Details: "For arcs and drilling cycles"},
	{Code: "G19", Description: "YZ plane selection", Details: "For arcs and drilling cycles"},
	{Code: "G20", Description: "Inch units", Details: "Interpret coordinates as inches"},
	{Code: "G21", Description: "Millimeter units", Details: "Interpret coordinates as millimeters"},
	{Code: "G28", Description: "Return to reference point", Details: "Move to machine home position"},
	{Code: "G54", Description: "Work coordinate system 1", Details: "Select preset work offset 1"},
	{Code: "G55", Description: "Work coordinate system 2", Details: "Select preset work offset 2"},
	{Code: "G56", Description: "Work coordinate system 3", Details: "Select preset work offset 3"},
	{Code: "G57", Description: "Work coordinate system 4", Details: "Select preset work offset 4"},
	{Code: "G58", Description: "Work coordinate system 5", Details: "Select preset work offset 5"},
	{Code: "G59", Description: "Work coordinate system 6", Details: "Select preset work offset 6"},
	{Code: "G90", Description: "Absolute positioning", Details: "Interpret coordinates as absolute"},
	{Code: "G91", Description: "Incremental positioning", Details: "Interpret coordinates as relative"},
	{Code: "G92", Description: "Coordinate system offset", Details: "Set current position to the given coordinates"},

	// Common M codes
	{Code: "M0", Description: "Program stop", Details: "Wait for operator input"},
	{Code: "M1", Description: "Optional stop", Details: "Stop if the optional-stop switch is on"},
	{Code: "M2", Description: "Program end", Details: "End program and reset"},
	{Code: "M3", Description: "Spindle on, clockwise", Details: "RPM given by S"},
	{Code: "M4", Description: "Spindle on, counterclockwise", Details: "RPM given by S"},
	{Code: "M5", Description: "Spindle stop", Details: "Stop spindle rotation"},
	{Code: "M6", Description: "Tool change", Details: "Tool number given by T"},
	{Code: "M8", Description: "Coolant on", Details: "Start coolant supply"},
	{Code: "M9", Description: "Coolant off", Details: "Stop coolant supply"},
	{Code: "M30", Description: "Program end and rewind", Details: "End program and return to start"},

	// DOOSAN-specific M codes
	{Code: "M12", Description: "Chuck clamp", Details: "Clamp the workpiece", Brand: "DOOSAN"},
	{Code: "M13", Description: "Chuck unclamp", Details: "Unclamp the workpiece", Brand: "DOOSAN"},
	{Code: "M14", Description: "Tailstock advance", Details: "Move tailstock forward", Brand: "DOOSAN"},
	{Code: "M15", Description: "Tailstock retract", Details: "Move tailstock back", Brand: "DOOSAN"},
	{Code: "M20", Description: "Sub-spindle mode", Details: "Sub-spindle control mode", Brand: "DOOSAN"},
	{Code: "M21", Description: "Main-spindle mode", Details: "Main-spindle control mode", Brand: "DOOSAN"},
	{Code: "M22", Description: "Sub-spindle clamp", Details: "Clamp the sub-spindle", Brand: "DOOSAN"},
	{Code: "M23", Description: "Sub-spindle unclamp", Details: "Unclamp the sub-spindle", Brand: "DOOSAN"},
	{Code: "M24", Description: "Sub-spindle C-axis mode", Details: "Sub-spindle C-axis mode", Brand: "DOOSAN"},
	{Code: "M25", Description: "Sub-spindle turning mode", Details: "Sub-spindle turning mode", Brand: "DOOSAN"},

	// HYUNDAI-WIA-specific M codes
	{Code: "M10", Description: "Chuck clamp", Details: "Operate chuck clamp", Brand: "WIA"},
	{Code: "M11", Description: "Chuck unclamp", Details: "Operate chuck unclamp", Brand: "WIA"},
	{Code: "M17", Description: "C-axis clamp", Details: "Operate C-axis clamp", Brand: "WIA"},
	{Code: "M18", Description: "C-axis unclamp", Details: "Operate C-axis unclamp", Brand: "WIA"},
	{Code: "M19", Description: "Spindle orientation", Details: "Orient the spindle", Brand: "WIA"},
	{Code: "M41", Description: "Low gear select", Details: "Select spindle low gear", Brand: "WIA"},
	{Code: "M42", Description: "High gear select", Details: "Select spindle high gear", Brand: "WIA"},
	{Code: "M51", Description: "Tool measurement mode on", Details: "Enable tool measurement mode", Brand: "WIA"},
	{Code: "M52", Description: "Tool measurement mode off", Details: "Disable tool measurement mode", Brand: "WIA"},

	// SMEC-specific M codes
	{Code: "M16", Description: "Tool length measurement", Details: "Measure tool length automatically", Brand: "SMEC"},
	{Code: "M28", Description: "Tool breakage detection on", Details: "Enable tool breakage detection", Brand: "SMEC"},
	{Code: "M29", Description: "Tool breakage detection off", Details: "Disable tool breakage detection", Brand: "SMEC"},
	{Code: "M31", Description: "Chip conveyor on", Details: "Start the chip conveyor", Brand: "SMEC"},
	{Code: "M33", Description: "Chip conveyor off", Details: "Stop the chip conveyor", Brand: "SMEC"},
	{Code: "M48", Description: "Feed rate override on", Details: "Enable feed rate override", Brand: "SMEC"},
	{Code: "M49", Description: "Feed rate override off", Details: "Disable feed rate override", Brand: "SMEC"},

	// Axis and parameter words
	{Code: "X", Description: "X axis coordinate", Details: "X axis distance or position"},
	{Code: "Y", Description: "Y axis coordinate", Details: "Y axis distance or position"},
	{Code: "Z", Description: "Z axis coordinate", Details: "Z axis distance or position"},
	{Code: "I", Description: "Arc center X offset", Details: "X offset to the arc center"},
	{Code: "J", Description: "Arc center Y offset", Details: "Y offset to the arc center"},
	{Code: "K", Description: "Arc center Z offset", Details: "Z offset to the arc center"},
	{Code: "F", Description: "Feed rate", Details: "Movement speed (mm/min)"},
	{Code: "S", Description: "Spindle speed", Details: "Rotation speed (RPM)"},
	{Code: "P", Description: "Time or repeat parameter", Details: "Dwell time or repeat count"},
	{Code: "R", Description: "Radius or retract plane", Details: "Arc radius or cycle height"},
	{Code: "T", Description: "Tool number", Details: "Tool to use"},
}

// Definitions returns the full dictionary.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// normalize strips leading zeros from the numeric part of a G or M code so
// that G01 and G1 compare equal. Other codes are uppercased only.
func normalize(code string) string {
	code = strings.ToUpper(code)
	if len(code) < 2 {
		return code
	}
	if code[0] != 'G' && code[0] != 'M' {
		return code
	}
	num := strings.TrimLeft(code[1:], "0")
	if num == "" {
		num = "0"
	}
	return code[:1] + num
}

// Find looks up the definition for a code, case-insensitively and ignoring
// zero padding (G01 matches G1).
func Find(code string) (Definition, bool) {
	want := normalize(code)
	for _, def := range definitions {
		if normalize(def.Code) == want {
			return def, true
		}
	}
	return Definition{}, false
}

var (
	codeRe  = regexp.MustCompile(`(?i)[GM]\d+`)
	paramRe = regexp.MustCompile(`(?i)([XYZIJKFSPRT])-?\d*\.?\d+`)
)

// ParseLine extracts the G/M codes and parameter letters present in one
// line of a CNC program. Codes keep their numeric part (G1, M30); parameter
// words are reduced to their letter (X100 -> X).
func ParseLine(line string) []string {
	var codes []string
	for _, m := range codeRe.FindAllString(line, -1) {
		codes = append(codes, strings.ToUpper(m))
	}
	for _, m := range paramRe.FindAllStringSubmatch(line, -1) {
		codes = append(codes, strings.ToUpper(m[1]))
	}
	return codes
}

// DescribeLine returns the definitions for every recognized code on the
// line, in order of appearance. Unknown codes are skipped.
func DescribeLine(line string) []Definition {
	var defs []Definition
	for _, code := range ParseLine(line) {
		if def, ok := Find(code); ok {
			defs = append(defs, def)
		}
	}
	return defs
}
