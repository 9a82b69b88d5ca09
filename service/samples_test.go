package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamples(t *testing.T) {
	samples := Samples()

	require.Len(t, samples, 4)
	assert.Equal(t, "Simple Syntax Error", samples[0].Name)
	for _, s := range samples {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Code)
	}
}

func TestFindSample(t *testing.T) {
	sample, ok := FindSample("Division by Zero")
	require.True(t, ok)
	assert.Contains(t, sample.Code, "x / y")

	_, ok = FindSample("No Such Sample")
	assert.False(t, ok)
}
