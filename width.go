package vterm

import "github.com/unilibs/uniwidth"

// RuneWidth returns the display width of a rune: 2 for wide characters
// (CJK, fullwidth forms, emoji), 0 for controls and zero-width characters,
// 1 otherwise.
func RuneWidth(r rune) int {
	if r == 0 || IsControl(r) {
		return 0
	}
	w := uniwidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

// IsWideRune returns true if the rune occupies two columns.
func IsWideRune(r rune) bool {
	return RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
