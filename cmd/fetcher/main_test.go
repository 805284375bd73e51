package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdscli/internal/config"
)

func TestResolveYears(t *testing.T) {
	years, err := resolveYears(2024, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, years)

	years, err = resolveYears(0, 2020, 2022)
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2021, 2022}, years)

	years, err = resolveYears(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, config.AvailableYears(), years)

	_, err = resolveYears(2024, 2020, 2022)
	assert.Error(t, err)

	_, err = resolveYears(0, 2022, 2020)
	assert.Error(t, err)

	_, err = resolveYears(0, 2020, 0)
	assert.Error(t, err)
}
