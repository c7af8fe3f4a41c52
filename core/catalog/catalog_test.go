package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/schedgen/core/model"
)

func offering() []model.Meeting {
	return []model.Meeting{
		{Course: "Cálculo Integral", Section: "2", Day: model.Thursday, Start: model.At(8, 0), End: model.At(10, 0), Enrolled: 20, Capacity: 40},
		{Course: "Cálculo Integral", Section: "2", Day: model.Monday, Start: model.At(7, 0), End: model.At(9, 0), Enrolled: 20, Capacity: 40},
		{Course: "Cálculo Integral", Section: "1", Day: model.Tuesday, Start: model.At(18, 0), End: model.At(20, 0), Enrolled: 40, Capacity: 40},
		{Course: "Física", Section: "5", Day: model.Saturday, Start: model.At(6, 0), End: model.At(9, 0), Enrolled: 0, Capacity: 0},
		{Course: "Álgebra", Section: "1", Day: model.Friday, Start: model.At(10, 0), End: model.At(12, 0), Enrolled: 10, Capacity: 20},
	}
}

func TestCoursesSorted(t *testing.T) {
	c := New(offering())
	assert.Equal(t, []string{"Cálculo Integral", "Física", "Álgebra"}, c.Courses())
	assert.True(t, c.Has("Física"))
	assert.False(t, c.Has("Fisica"))
}

func TestSearchIgnoresCaseAndAccents(t *testing.T) {
	c := New(offering())
	assert.Equal(t, []string{"Cálculo Integral"}, c.Search("calculo"))
	assert.Equal(t, []string{"Física"}, c.Search("FISI"))
	assert.Equal(t, []string{"Álgebra"}, c.Search("alge"))
	assert.Len(t, c.Search(""), 3)
	assert.Empty(t, c.Search("quimica"))
}

func TestSummary(t *testing.T) {
	sum := New(offering()).Summary()
	require.Len(t, sum, 4)
	s := sum[1] // Cálculo Integral section 2
	assert.Equal(t, model.SectionID("2"), s.Section)
	assert.Equal(t, "Monday, Thursday", s.Days)
	assert.Equal(t, model.At(7, 0), s.Start)
	assert.Equal(t, model.At(10, 0), s.End)
	assert.InDelta(t, 50.0, s.Occupancy, 1e-9)
}

func TestStats(t *testing.T) {
	st := New(offering()).Stats()
	require.Len(t, st, 3)
	calc := st[0]
	assert.Equal(t, 2, calc.Sections)
	assert.Equal(t, 1, calc.OpenSections)
	assert.InDelta(t, 75.0, calc.MeanOccupancy, 1e-9)
	// sample standard deviation of {100, 50}
	assert.InDelta(t, math.Sqrt(1250), calc.StdDevOccupancy, 1e-9)

	fis := st[1]
	assert.Equal(t, 1, fis.Sections)
	assert.Zero(t, fis.OpenSections)
	assert.Zero(t, fis.MeanOccupancy)
}
