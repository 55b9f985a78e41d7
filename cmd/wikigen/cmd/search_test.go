package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmiths/wikigen/internal/search"
)

func TestParseFilters(t *testing.T) {
	// A plain equality filter on a metadata path.
	filters, err := parseFilters([]string{"metadata.category:eq:guides"})
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, search.Filter{
		Field: "metadata.category",
		Op:    search.OpEq,
		Value: "guides",
	}, filters[0])
}

func TestParseFilters_NumericCoercion(t *testing.T) {
	filters, err := parseFilters([]string{"metadata.wordCount:gt:100"})
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, 100.0, filters[0].Value)
}

func TestParseFilters_ListOperators(t *testing.T) {
	filters, err := parseFilters([]string{"metadata.category:in:guides,reference"})
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, search.OpIn, filters[0].Op)
	assert.Equal(t, []string{"guides", "reference"}, filters[0].Value)

	filters, err = parseFilters([]string{"metadata.tags:nin:draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"draft"}, filters[0].Value)
}

func TestParseFilters_ValueMayContainColons(t *testing.T) {
	// Only the first two colons split; the rest belong to the value.
	filters, err := parseFilters([]string{"content:contains:http://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", filters[0].Value)
}

func TestParseFilters_Errors(t *testing.T) {
	_, err := parseFilters([]string{"missing-op"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field:op:value")

	_, err = parseFilters([]string{"field:regex:value"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestParseFilters_Multiple(t *testing.T) {
	filters, err := parseFilters([]string{
		"metadata.category:eq:guides",
		"metadata.wordCount:lte:500",
	})
	require.NoError(t, err)
	assert.Len(t, filters, 2)
}

func TestParseFilters_Empty(t *testing.T) {
	filters, err := parseFilters(nil)
	require.NoError(t, err)
	assert.Empty(t, filters)
}
