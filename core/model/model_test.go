package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"9:00", 540},
		{"09:30", 570},
		{"18:45:00", 1125},
		{"0.375", 540},
		{" 07:05 ", 425},
		{"9:00 AM", 540},
		{"12:15 am", 15},
		{"12:00 PM", 720},
		{"6:30 p.m.", 1110},
		{"0.5", 720},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got.Minutes() != c.want {
			t.Fatalf("%q: expected %d got %d", c.in, c.want, got.Minutes())
		}
	}
	for _, bad := range []string{"", "25:00", "9:7", "abc", "1.5", "10:61", "0.9999", "13:00 PM", "0:30 AM", "0.3 AM"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNewMeetingValidation(t *testing.T) {
	ok := Meeting{Course: " Calculo ", Section: "1", Day: Monday, Start: At(9, 0), End: At(10, 0), Capacity: 30}
	m, err := NewMeeting(ok)
	require.NoError(t, err)
	assert.Equal(t, "Calculo", m.Course)

	bad := ok
	bad.End = At(9, 0)
	_, err = NewMeeting(bad)
	assert.Error(t, err, "start must precede end")

	bad = ok
	bad.Course = ""
	_, err = NewMeeting(bad)
	assert.Error(t, err)

	bad = ok
	bad.Enrolled = -1
	_, err = NewMeeting(bad)
	assert.Error(t, err)

	bad = ok
	bad.Day = Weekday(6)
	_, err = NewMeeting(bad)
	assert.Error(t, err)
}

func TestSectionIDLess(t *testing.T) {
	assert.True(t, SectionID("2").Less("10"))
	assert.False(t, SectionID("10").Less("2"))
	assert.True(t, SectionID("7").Less("A"))
	assert.True(t, SectionID("A").Less("B"))
}

func TestOccupancy(t *testing.T) {
	s := Section{Meetings: []Meeting{{Enrolled: 15, Capacity: 30}}}
	pct, ok := s.Occupancy()
	require.True(t, ok)
	assert.InDelta(t, 50.0, pct, 1e-9)

	_, ok = Section{Meetings: []Meeting{{Capacity: 0}}}.Occupancy()
	assert.False(t, ok)
}

func TestParseEnums(t *testing.T) {
	w, err := ParseWindow("Mañana")
	require.NoError(t, err)
	assert.Equal(t, WindowMorning, w)
	c, err := ParseCampus("Crisanto Luque")
	require.NoError(t, err)
	assert.Equal(t, CampusLuque, c)
	d, err := ParseWeekday("Mier")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, d)
	_, err = ParseCampus("moon")
	assert.Error(t, err)
}

func TestMeetingJSON(t *testing.T) {
	m := Meeting{Course: "A", Section: "1", Day: Friday, Start: At(7, 0), End: At(9, 30)}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	var back Meeting
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}

func TestRequestNormalize(t *testing.T) {
	r := Request{Courses: []string{" A", "B", "", "A"}}.Normalize()
	assert.Equal(t, []string{"A", "B"}, r.Courses)
}

func TestCombinationKey(t *testing.T) {
	c := Combination{Sections: []Section{{Course: "A", ID: "1"}, {Course: "B", ID: "2"}}}
	assert.Equal(t, "A:1|B:2", c.Key())
	s, ok := c.Section("B")
	require.True(t, ok)
	assert.Equal(t, SectionID("2"), s.ID)
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, Request{Courses: []string{"A"}, Window: WindowEvening, Campus: CampusLuque}.Validate())
	assert.Error(t, Request{Courses: []string{"A", ""}}.Validate())
	err := Request{Courses: []string{"A"}, Window: Window(7)}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.Error(t, Request{Courses: []string{"A"}, Campus: Campus(-1)}.Validate())
}
