package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	cases := []struct {
		in     Page
		want   Page
		offset int
	}{
		{Page{}, Page{1, 10}, 0},
		{Page{Page: 2}, Page{2, 10}, 10},
		{Page{Page: 3, Limit: 5}, Page{3, 5}, 10},
		{Page{Page: 1, Limit: 1}, Page{1, 1}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Normalize())
		assert.Equal(t, tc.offset, tc.in.Offset())
	}
}
