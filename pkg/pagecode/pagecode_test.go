package pagecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	code, err := Parse("123_456")
	require.NoError(t, err)
	assert.Equal(t, Code{123, 456}, code)

	code, err = Parse("0000164_19010101_0001")
	require.NoError(t, err)
	assert.Equal(t, Code{164, 19010101, 1}, code)
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{"123_abc", "", "12__3", "mets"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCompare(t *testing.T) {
	a, _ := Parse("123_456")
	b, _ := Parse("123_789")
	c, _ := Parse("124_001")

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, -1, Compare(b, c))
	assert.Equal(t, -1, Compare(a, c))
	assert.Equal(t, 1, Compare(c, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestCompare_UnequalLength(t *testing.T) {
	assert.Equal(t, -1, Compare(Code{123}, Code{123, 1}))
	assert.Equal(t, 1, Compare(Code{124}, Code{123, 999}))
	assert.Equal(t, -1, Compare(Code{122, 5}, Code{123}))
}

func TestSort(t *testing.T) {
	shuffled := []string{"124_001", "123_789", "2_10", "123_456", "2_9"}
	sorted, err := Sort(shuffled)
	require.NoError(t, err)
	assert.Equal(t, []string{"2_9", "2_10", "123_456", "123_789", "124_001"}, sorted)
	// input is left untouched
	assert.Equal(t, "124_001", shuffled[0])
}

func TestSort_MalformedFailsBeforeSorting(t *testing.T) {
	_, err := Sort([]string{"1_2", "1_x", "0_1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "1_x")
}
