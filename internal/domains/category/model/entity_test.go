package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildTree(t *testing.T) {
	flat := []*Category{
		{ID: "cat1", Name: "Writing"},
		{ID: "cat2", Name: "Image"},
		{ID: "cat3", Name: "Copywriting", ParentID: strPtr("cat1")},
		{ID: "cat4", Name: "Orphan", ParentID: strPtr("missing")},
		{ID: "cat5", Name: "Blogging", ParentID: strPtr("cat1")},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 2)
	assert.Equal(t, "cat1", roots[0].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "cat3", roots[0].Children[0].ID)
	assert.Equal(t, "cat5", roots[0].Children[1].ID)
	assert.Empty(t, roots[1].Children)
	assert.Nil(t, flat[0].Children, "input is not mutated")
}
