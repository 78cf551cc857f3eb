package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatToPhoneKnownValues(t *testing.T) {
	tests := []struct {
		grade   int
		section string
		roll    int
		want    string
	}{
		{1, "A", 1, "9000000001"},
		{1, "A", 30, "9000000030"},
		{1, "B", 1, "9000000031"},
		{7, "A", 5, "9000000365"},
		{10, "B", 30, "9000000600"},
	}
	for _, tt := range tests {
		phone, ok := SeatToPhone(tt.grade, tt.section, tt.roll)
		require.True(t, ok, "seat %d%s%02d", tt.grade, tt.section, tt.roll)
		assert.Equal(t, tt.want, phone)
	}
}

func TestSeatToPhoneRejectsInvalidSeats(t *testing.T) {
	tests := []struct {
		name    string
		grade   int
		section string
		roll    int
	}{
		{"grade too low", 0, "A", 1},
		{"grade too high", 11, "A", 1},
		{"unknown section", 5, "C", 1},
		{"lowercase section", 5, "a", 1},
		{"roll too low", 5, "A", 0},
		{"roll too high", 5, "A", 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := SeatToPhone(tt.grade, tt.section, tt.roll)
			assert.False(t, ok)
		})
	}
}

func TestPhoneToSeatRejectsOutOfDomain(t *testing.T) {
	for _, phone := range []string{"", "abc", "9000000000", "9000000601", "123"} {
		_, _, _, ok := PhoneToSeat(phone)
		assert.False(t, ok, "phone %q", phone)
	}
}

// Every valid seat must round-trip through its derived phone.
func TestPhoneDerivationIsBijective(t *testing.T) {
	seen := map[string]bool{}
	for grade := 1; grade <= 10; grade++ {
		for _, section := range []string{"A", "B"} {
			for roll := 1; roll <= 30; roll++ {
				phone, ok := SeatToPhone(grade, section, roll)
				require.True(t, ok)
				require.False(t, seen[phone], "phone %s derived twice", phone)
				seen[phone] = true

				g, s, r, ok := PhoneToSeat(phone)
				require.True(t, ok)
				assert.Equal(t, grade, g)
				assert.Equal(t, section, s)
				assert.Equal(t, roll, r)
			}
		}
	}
	assert.Len(t, seen, 600)
}

func TestSeatIDRoundTrip(t *testing.T) {
	assert.Equal(t, "7A05", SeatID(7, "A", 5))
	assert.Equal(t, "10B30", SeatID(10, "B", 30))

	grade, section, roll, ok := ParseSeatID("7A05")
	require.True(t, ok)
	assert.Equal(t, 7, grade)
	assert.Equal(t, "A", section)
	assert.Equal(t, 5, roll)

	for _, id := range []string{"", "A05", "7C05", "7A5", "7a05"} {
		_, _, _, ok := ParseSeatID(id)
		assert.False(t, ok, "seat id %q", id)
	}
}
