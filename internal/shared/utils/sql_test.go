package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.SQL())

	w.Add("is_published = true")
	w.Add("category_id = ANY(?)", []string{"a", "b"})
	w.Add("(name ILIKE ? OR description ILIKE ?)", "%x%", "%x%")

	assert.Equal(t, " WHERE is_published = true AND category_id = ANY($1) AND (name ILIKE $2 OR description ILIKE $3)", w.SQL())
	assert.Equal(t, "$4", w.Next(20))
	assert.Len(t, w.Args(), 4)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off`, EscapeLike("50%_off"))
}
