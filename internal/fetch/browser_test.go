package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   Loading...   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("resume text ", 40)))
}
