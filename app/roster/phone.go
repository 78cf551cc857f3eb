package roster

import (
	"fmt"
	"regexp"
	"strconv"
)

// Seeded environments assign guardian phone numbers deterministically from
// the student's seat: phone = phoneBase + serial, where serial enumerates
// rolls 1..30 across sections A,B of classes 1..10. The derivation is used
// only when the canonical store has no phone on file, so a recipient is
// never dropped purely for missing contact data.
const (
	phoneBase = 9000000000
	rollsPer  = 30
	maxGrade  = 10
	maxSerial = maxGrade * 2 * rollsPer
)

var seatPattern = regexp.MustCompile(`^(\d+)([AB])(\d{2})$`)

// SeatToPhone derives the guardian phone for a seat. Reports false when the
// seat lies outside the seeded domain (grade 1..10, section A/B, roll 1..30).
func SeatToPhone(grade int, section string, roll int) (string, bool) {
	if grade < 1 || grade > maxGrade || roll < 1 || roll > rollsPer {
		return "", false
	}
	sectionIndex, ok := sectionIndexOf(section)
	if !ok {
		return "", false
	}
	serial := ((grade-1)*2+sectionIndex)*rollsPer + roll
	return strconv.FormatInt(phoneBase+int64(serial), 10), true
}

// PhoneToSeat recovers the seat from a derived phone number. Exact inverse of
// SeatToPhone over the valid domain.
func PhoneToSeat(phone string) (grade int, section string, roll int, ok bool) {
	n, err := strconv.ParseInt(phone, 10, 64)
	if err != nil {
		return 0, "", 0, false
	}
	serial := n - phoneBase
	if serial < 1 || serial > maxSerial {
		return 0, "", 0, false
	}
	t := serial - 1
	groupIndex := int(t / rollsPer)
	grade = groupIndex/2 + 1
	if groupIndex%2 == 0 {
		section = "A"
	} else {
		section = "B"
	}
	roll = int(t%rollsPer) + 1
	return grade, section, roll, true
}

// SeatID formats the seat identifier, e.g. "7A05".
func SeatID(grade int, section string, roll int) string {
	return fmt.Sprintf("%d%s%02d", grade, section, roll)
}

// ParseSeatID splits a seat identifier back into its parts.
func ParseSeatID(id string) (grade int, section string, roll int, ok bool) {
	m := seatPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, "", 0, false
	}
	grade, _ = strconv.Atoi(m[1])
	roll, _ = strconv.Atoi(m[3])
	return grade, m[2], roll, true
}

func sectionIndexOf(section string) (int, bool) {
	switch section {
	case "A":
		return 0, true
	case "B":
		return 1, true
	}
	return 0, false
}
