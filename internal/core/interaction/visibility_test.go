package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibility_RequiresFocusAndCandidates(t *testing.T) {
	var v Visibility
	assert.False(t, v.Visible())

	v.SetCandidates(3)
	assert.False(t, v.Visible(), "not focused")

	v.Focus()
	assert.True(t, v.Visible())

	v.SetCandidates(0)
	assert.False(t, v.Visible(), "no candidates")
}

func TestVisibility_BlurGrace(t *testing.T) {
	var v Visibility
	v.Focus()
	v.SetCandidates(2)

	token := v.Blur()
	assert.True(t, v.Visible(), "still visible during grace period")

	assert.True(t, v.GraceElapsed(token))
	assert.False(t, v.Visible())
	assert.False(t, v.Focused())
}

func TestVisibility_RefocusCancelsBlur(t *testing.T) {
	var v Visibility
	v.Focus()
	v.SetCandidates(2)

	token := v.Blur()
	v.Focus()

	assert.False(t, v.GraceElapsed(token))
	assert.True(t, v.Visible())
}

func TestVisibility_StaleBlurToken(t *testing.T) {
	var v Visibility
	v.Focus()
	v.SetCandidates(1)

	old := v.Blur()
	latest := v.Blur()

	assert.False(t, v.GraceElapsed(old))
	assert.True(t, v.Visible())
	assert.True(t, v.GraceElapsed(latest))
	assert.False(t, v.GraceElapsed(latest), "token is single use")
}

func TestVisibility_DismissUntilFocusOrData(t *testing.T) {
	var v Visibility
	v.Focus()
	v.SetCandidates(2)

	v.Dismiss()
	assert.False(t, v.Visible())

	v.Focus()
	assert.True(t, v.Visible())

	v.Dismiss()
	v.SetCandidates(5)
	assert.True(t, v.Visible())
}
