package models

import "fmt"

// Target variants. A target is a closed tagged union: exactly one variant
// applies and fields are never mixed across variants.
const (
	TargetStudent = "student"
	TargetClass   = "class"
	TargetSection = "section"
	TargetClasses = "classes"
)

// Target describes who a campaign should reach. Wire shape:
// {type, studentName?, parentPhone?, grade?, section?, grades?}.
type Target struct {
	Type        string   `json:"type"`
	StudentName string   `json:"studentName,omitempty"`
	ParentPhone string   `json:"parentPhone,omitempty"`
	Grade       string   `json:"grade,omitempty"`
	Section     string   `json:"section,omitempty"`
	Grades      []string `json:"grades,omitempty"`
}

// Validate checks that the variant's required fields are present. A student
// target with neither name nor phone is allowed; it simply matches nothing.
func (t *Target) Validate() error {
	switch t.Type {
	case TargetStudent:
		return nil
	case TargetClass:
		if t.Grade == "" {
			return fmt.Errorf("class target missing grade")
		}
	case TargetSection:
		if t.Grade == "" {
			return fmt.Errorf("section target missing grade")
		}
		if t.Section == "" {
			return fmt.Errorf("section target missing section")
		}
	case TargetClasses:
		if len(t.Grades) == 0 {
			return fmt.Errorf("classes target missing grades")
		}
	default:
		return fmt.Errorf("unknown target type %q", t.Type)
	}
	return nil
}
