package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestSetColorForcing(t *testing.T) {
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	SetColorForcing(true, false)
	assert.Equal(t, termenv.ANSI256, lipgloss.ColorProfile())

	SetColorForcing(true, true)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile(), "disable wins")

	lipgloss.SetColorProfile(termenv.TrueColor)
	SetColorForcing(false, false)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile(), "no flags keep detection")
}
