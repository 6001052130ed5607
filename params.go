package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses a single parameter expression, supporting plain
// numbers and pi expressions.
// Returns the parsed float64 value and true on success, or 0 and false on failure.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Try plain number first
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	// Try pi expression
	s = strings.ToLower(s)
	if matches := piExprRegex.FindStringSubmatch(s); matches != nil {
		negative := matches[1] == "-"
		coeffStr := matches[2]
		denomStr := matches[3]

		coeff := 1.0
		if coeffStr != "" {
			var err error
			coeff, err = strconv.ParseFloat(coeffStr, 64)
			if err != nil {
				return 0, false
			}
		}

		result := coeff * math.Pi

		if denomStr != "" {
			denom, err := strconv.ParseFloat(denomStr, 64)
			if err != nil || denom == 0 {
				return 0, false
			}
			result /= denom
		}

		if negative {
			result = -result
		}
		return result, true
	}

	return 0, false
}

// formatParam formats a float64 parameter value, using pi notation when possible.
func formatParam(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}

// parseComplexAmp parses a pulse amplitude: a plain real ("0.2", "-0.1"),
// a pi expression ("pi/8"), or a full complex literal ("0.2+0.1i").
func parseComplexAmp(s string) (complex128, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if val, ok := parseParamExpr(s); ok {
		return complex(val, 0), true
	}
	if val, err := strconv.ParseComplex(s, 128); err == nil {
		return val, true
	}
	return 0, false
}

// parseDurations parses a sweep of pulse durations (in samples). Accepts a
// comma list ("64,128,256") or a start:stop:step range ("64:512:64", stop
// inclusive). Returns nil if any part fails to parse.
func parseDurations(input string) []int {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if strings.Contains(input, ":") {
		parts := strings.Split(input, ":")
		if len(parts) != 3 {
			return nil
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		stop, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		step, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil || step <= 0 || stop < start {
			return nil
		}
		var out []int
		for n := start; n <= stop; n += step {
			out = append(out, n)
		}
		return out
	}

	var out []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// formatDurations renders a duration sweep back to comma form.
func formatDurations(samples []int) string {
	parts := make([]string, len(samples))
	for i, n := range samples {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
