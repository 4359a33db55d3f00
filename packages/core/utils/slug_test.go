package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"War Council", "war-council"},
		{"  The  Elite!!  Squad  ", "the-elite-squad"},
		{"CLAN#9", "clan-9"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
		{"§†‡", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "input %q", tc.name)
	}
}
