package roster

import (
	"fmt"
	"strings"

	"sas-admin/app/models"
)

// Entry is one roster row fed to the resolver. Phone may be raw; Resolve
// returns entries with Phone in normalized form.
type Entry struct {
	SeatID  string `json:"appId"`
	Name    string `json:"name"`
	Grade   string `json:"grade"`
	Section string `json:"section"`
	Phone   string `json:"parentPhone"`
}

// Candidate describes one of several students matching an under-specified
// student target, returned so the caller can disambiguate.
type Candidate struct {
	Name    string `json:"name"`
	Grade   string `json:"grade"`
	Section string `json:"section"`
	Phone   string `json:"parentPhone"`
}

// AmbiguousError is returned when a student target names more than one
// student and carries no phone to narrow the match. Fan-out must abort on it
// rather than guess.
type AmbiguousError struct {
	Candidates []Candidate
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("student target matches %d students", len(e.Candidates))
}

// Resolve expands a targeting specification against the roster. Entries with
// an empty normalized phone are retained; billing filters them out later so
// a preview can still show students with no phone on file.
func Resolve(target *models.Target, entries []Entry) ([]Entry, error) {
	if target == nil {
		return []Entry{}, nil
	}

	switch target.Type {
	case models.TargetStudent:
		return resolveStudent(target, entries)
	case models.TargetClass:
		return filterEntries(entries, func(e Entry) bool {
			return strings.TrimSpace(e.Grade) == strings.TrimSpace(target.Grade)
		}), nil
	case models.TargetSection:
		return filterEntries(entries, func(e Entry) bool {
			return strings.TrimSpace(e.Grade) == strings.TrimSpace(target.Grade) &&
				strings.TrimSpace(e.Section) == strings.TrimSpace(target.Section)
		}), nil
	case models.TargetClasses:
		wanted := make(map[string]bool, len(target.Grades))
		for _, g := range target.Grades {
			wanted[strings.TrimSpace(g)] = true
		}
		return filterEntries(entries, func(e Entry) bool {
			return wanted[strings.TrimSpace(e.Grade)]
		}), nil
	}
	return []Entry{}, nil
}

func resolveStudent(target *models.Target, entries []Entry) ([]Entry, error) {
	wantName := NormalizeName(target.StudentName)
	wantPhone := NormalizePhone(target.ParentPhone)

	// Neither field supplied (or the phone had no digits and no name was
	// given): nothing to match on.
	if wantName == "" && wantPhone == "" {
		return []Entry{}, nil
	}

	matched := filterEntries(entries, func(e Entry) bool {
		nameOK := wantName == "" || strings.Contains(NormalizeName(e.Name), wantName)
		phoneOK := wantPhone == "" || NormalizePhone(e.Phone) == wantPhone
		return nameOK && phoneOK
	})

	// Name-only targeting must fail distinctly when it hits more than one
	// student; silently picking one would bill the wrong family.
	if wantPhone == "" && len(matched) > 1 {
		candidates := make([]Candidate, 0, len(matched))
		for _, e := range matched {
			candidates = append(candidates, Candidate{Name: e.Name, Grade: e.Grade, Section: e.Section, Phone: e.Phone})
		}
		return nil, &AmbiguousError{Candidates: candidates}
	}
	return matched, nil
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	out := []Entry{}
	for _, e := range entries {
		if keep(e) {
			e.Phone = NormalizePhone(e.Phone)
			out = append(out, e)
		}
	}
	return out
}
