package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTechKind(t *testing.T) {
	k, err := ParseTechKind("battery")
	require.NoError(t, err)
	assert.Equal(t, TechBattery, k)

	_, err = ParseTechKind("geothermal")
	assert.Error(t, err)
}

func TestFirstYearExpense(t *testing.T) {
	var nilOut *TechOutputs
	_, ok := nilOut.FirstYearExpense()
	assert.False(t, ok)

	_, ok = (&TechOutputs{}).FirstYearExpense()
	assert.False(t, ok)

	v, ok := (&TechOutputs{OMTotalExpense: []float64{12, 13}}).FirstYearExpense()
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)
}

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()
	require.Len(t, s, HoursPerYear)
	for _, v := range s {
		assert.Equal(t, DefaultScheduleValue, v)
	}
}
