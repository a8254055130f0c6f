package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name              string
		limit, page, max  int
		wantLimit, wantPg int
		wantOffset        int
	}{
		{"defaults pass through", 10, 1, 100, 10, 1, 0},
		{"third page", 20, 3, 100, 20, 3, 40},
		{"zero limit clamps to one", 0, 2, 100, 1, 2, 1},
		{"negative page clamps to one", 5, -4, 100, 5, 1, 0},
		{"limit capped", 500, 2, 100, 100, 2, 100},
		{"no cap", 500, 1, 0, 500, 1, 0},
		{"huge page capped", 100, math.MaxInt, 100, 100, math.MaxInt/100 + 1, math.MaxInt / 100 * 100},
		{"max page with limit one", 1, math.MaxInt, 0, 1, math.MaxInt, math.MaxInt - 1},
		{"page near overflow", 100, 1 << 62, 100, 100, math.MaxInt/100 + 1, math.MaxInt / 100 * 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.limit, tt.page, tt.max)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantPg, p.Page)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.GreaterOrEqual(t, p.Offset, 0)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
