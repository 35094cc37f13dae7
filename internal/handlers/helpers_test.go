package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Run("Short content untouched", func(t *testing.T) {
		assert.Equal(t, "hello", excerpt("hello", 200))
	})

	t.Run("Long content truncated with ellipsis", func(t *testing.T) {
		got := excerpt(strings.Repeat("a", 250), 200)
		assert.Equal(t, 203, len(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("Multibyte rune at the boundary stays intact", func(t *testing.T) {
		got := excerpt(strings.Repeat("é", 250), 200)
		assert.True(t, utf8.ValidString(got))
		assert.NotContains(t, got, "�")
		assert.Equal(t, strings.Repeat("é", 200)+"...", got)
	})
}

func TestBadgeClass(t *testing.T) {
	assert.Equal(t, "tech-badge", badgeClass("Technology"))
	assert.Equal(t, "other-badge", badgeClass("Other"))
	assert.Equal(t, "other-badge", badgeClass("Something Unknown"))
}
