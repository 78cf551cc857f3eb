package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	classPattern = regexp.MustCompile(`^(?i)class\s*(\d+)$`)
)

// CanonicalGrade converts free-form grade input to the canonical roster form:
// "7" and "class 7" become "CLASS 7"; pre-primary names (NURSERY, LKG, UKG)
// pass through uppercased; anything else is returned as given.
func CanonicalGrade(input string) string {
	g := strings.TrimSpace(input)
	if g == "" {
		return ""
	}
	if digitsOnly.MatchString(g) {
		return "CLASS " + g
	}
	upper := strings.ToUpper(g)
	if upper == "NURSERY" || upper == "LKG" || upper == "UKG" {
		return upper
	}
	if m := classPattern.FindStringSubmatch(g); m != nil {
		return "CLASS " + m[1]
	}
	return g
}

// GradeNumber extracts the numeric grade from "CLASS 7" or "7". Pre-primary
// grades have no number.
func GradeNumber(grade string) (int, bool) {
	g := strings.TrimSpace(grade)
	if m := classPattern.FindStringSubmatch(g); m != nil {
		n, err := strconv.Atoi(m[1])
		return n, err == nil
	}
	if digitsOnly.MatchString(g) {
		n, err := strconv.Atoi(g)
		return n, err == nil
	}
	return 0, false
}

// GradeName formats a numeric grade in canonical form.
func GradeName(grade int) string {
	return fmt.Sprintf("CLASS %d", grade)
}
