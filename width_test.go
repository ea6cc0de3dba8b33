package vterm

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want int
	}{
		{"ascii", 'a', 1},
		{"space", ' ', 1},
		{"nul", 0, 0},
		{"c0", 0x07, 0},
		{"del", 0x7f, 0},
		{"c1", 0x9b, 0},
		{"cjk", '测', 2},
		{"hiragana", 'あ', 2},
		{"hangul", '한', 2},
		{"fullwidth", 'Ａ', 2},
		{"box drawing", '─', 1},
		{"combining", 0x0301, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuneWidth(tt.r); got != tt.want {
				t.Errorf("RuneWidth(%#x) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"hello", 5},
		{"漢字", 4},
		{"a漢b", 4},
		{"", 0},
	}

	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestIsWideRune(t *testing.T) {
	if !IsWideRune('漢') {
		t.Error("CJK should be wide")
	}
	if IsWideRune('a') {
		t.Error("ASCII should not be wide")
	}
}
