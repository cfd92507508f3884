package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSort(t *testing.T) {
	pages := []Page{
		{Code: "124_001"},
		{Code: "cover"},
		{Code: "123_789"},
		{Code: "123_456"},
	}
	Sort(pages)

	var codes []string
	for _, p := range pages {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"123_456", "123_789", "124_001", "cover"}, codes)
}

func TestString(t *testing.T) {
	p := Page{Words: []string{"Call", "me", "Ishmael."}}
	assert.Equal(t, "Call me Ishmael.", p.String())
	assert.Equal(t, "", (&Page{}).String())
}
