package cmd

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_RejectsContradictoryKindFlags(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"export", "--year", "2025", "--expenses-only", "--income-only"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expenses-only")
	assert.Contains(t, err.Error(), "income-only")
}

func TestPeriodFromFlags(t *testing.T) {
	period, err := periodFromFlags(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2025, period.Year)
	assert.Equal(t, time.March, period.Month)

	period, err = periodFromFlags(2025, 0)
	require.NoError(t, err)
	assert.True(t, period.WholeYear())

	_, err = periodFromFlags(123, 1)
	assert.ErrorContains(t, err, "invalid year")

	_, err = periodFromFlags(2025, 13)
	assert.ErrorContains(t, err, "invalid month")
}
