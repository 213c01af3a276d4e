package color

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForUser(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	c := ForUser("a@b.com")
	assert.Regexp(t, hex, c)
	assert.Equal(t, c, ForUser(" A@B.com "), "case and whitespace do not change the color")
	assert.NotEqual(t, c, ForUser("someone@else.com"))
}

func TestHSLToRGB(t *testing.T) {
	r, g, b := hslToRGB(0, 0, 1)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b = hslToRGB(0, 1, 0.5)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}
