// internal/common/grading/grading.go

// Package grading holds the single grade-point table shared by every scoring
// component. Keep it the only copy: the minimum-grade gate and the subject
// bonuses must resolve symbols identically.
package grading

import "strings"

// MaxPoints is the value of the top grade.
const MaxPoints = 12

var points = map[string]int{
	"A":  12,
	"A-": 11,
	"B+": 10,
	"B":  9,
	"B-": 8,
	"C+": 7,
	"C":  6,
	"C-": 5,
	"D+": 4,
	"D":  3,
	"D-": 2,
	"E":  1,
}

// Symbols lists the known grade symbols from best to worst.
var Symbols = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "E"}

// Points returns the point value of a grade symbol, or 0 when the symbol is unknown.
func Points(grade string) int {
	p, _ := Lookup(grade)
	return p
}

// Lookup returns the point value and whether the symbol is part of the scale.
// Surrounding whitespace is ignored; case is not.
func Lookup(grade string) (int, bool) {
	p, ok := points[strings.TrimSpace(grade)]
	return p, ok
}

// Known reports whether grade is one of Symbols.
func Known(grade string) bool {
	_, ok := Lookup(grade)
	return ok
}
