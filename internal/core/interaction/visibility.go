package interaction

// Visibility decides whether the dropdown is shown.
//
// The dropdown is visible only while the input is focused, the candidate list
// is non-empty, and the user has not dismissed it. Losing focus does not hide
// it immediately: Blur returns a token, and focus is dropped only when that
// token's grace period elapses, so a click on a row still lands.
type Visibility struct {
	focused   bool
	count     int
	dismissed bool

	blurToken   uint64
	blurPending bool
}

// Visible reports the current state.
func (v *Visibility) Visible() bool {
	return v.focused && v.count > 0 && !v.dismissed
}

// Focused reports whether the input holds focus (including a pending blur).
func (v *Visibility) Focused() bool {
	return v.focused
}

// Focus gains focus, clears any dismissal and cancels a pending blur.
func (v *Visibility) Focus() {
	v.focused = true
	v.dismissed = false
	v.blurPending = false
	v.blurToken++
}

// Blur starts the grace period and returns its token.
func (v *Visibility) Blur() uint64 {
	v.blurToken++
	v.blurPending = true
	return v.blurToken
}

// GraceElapsed drops focus if token belongs to the latest blur.
// It reports whether focus was lost.
func (v *Visibility) GraceElapsed(token uint64) bool {
	if !v.blurPending || token != v.blurToken {
		return false
	}
	v.blurPending = false
	v.focused = false
	return true
}

// Dismiss hides the dropdown until the next focus or candidate arrival.
// Used for outside pointer-down and Escape.
func (v *Visibility) Dismiss() {
	v.dismissed = true
}

// SetCandidates records the size of a newly arrived candidate list.
// A new list clears a previous dismissal.
func (v *Visibility) SetCandidates(n int) {
	if n < 0 {
		n = 0
	}
	v.count = n
	if n > 0 {
		v.dismissed = false
	}
}
