package service

import (
	"math"
	"testing"

	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerPage(t *testing.T) {
	p := Pager{PerPage: 20, MaxSize: 100}

	tests := []struct {
		page      int
		wantSkip  int
		wantCount int
	}{
		{page: 1, wantSkip: 0, wantCount: 20},
		{page: 3, wantSkip: 40, wantCount: 20},
		{page: 0, wantSkip: 0, wantCount: 20},
		{page: -5, wantSkip: 0, wantCount: 20},
	}
	for _, tt := range tests {
		skip, count, err := p.Page(tt.page)
		require.NoError(t, err, "page %d", tt.page)
		assert.Equal(t, tt.wantSkip, skip, "page %d", tt.page)
		assert.Equal(t, tt.wantCount, count, "page %d", tt.page)
	}
}

func TestPagerPageOutOfRange(t *testing.T) {
	p := Pager{PerPage: 20, MaxSize: 100}

	last := math.MaxInt/20 + 1
	skip, _, err := p.Page(last)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, skip, 0)

	for _, page := range []int{last + 1, 922337203685477580, math.MaxInt} {
		_, _, err := p.Page(page)
		assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err), "page %d", page)
	}
}

func TestPagerWindow(t *testing.T) {
	p := Pager{PerPage: 20, MaxSize: 100}

	skip, count, err := p.Window(5, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, skip)
	assert.Equal(t, 20, count)

	skip, count, err = p.Window(0, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, count)

	for _, bad := range [][2]int{{-1, 10}, {0, -1}, {0, 101}} {
		_, _, err := p.Window(bad[0], bad[1])
		require.Error(t, err)
		assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err))
	}
}

func TestPagerTotalPages(t *testing.T) {
	p := Pager{PerPage: 20, MaxSize: 100}
	assert.Equal(t, 1, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
	assert.Equal(t, 5, p.TotalPages(100))
}
