package vterm

import "testing"

func TestBoxDescriptorLines(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want uint16
	}{
		{"light horizontal", '─', BoxLines | boxL | boxR},
		{"heavy horizontal", '━', BoxLines | boxL | boxR | boxL2 | boxR2},
		{"light vertical", '│', BoxLines | boxU | boxD},
		{"light corner", '┌', BoxLines | boxD | boxR},
		{"light cross", '┼', BoxLines | boxL | boxR | boxU | boxD},
		{"double horizontal", '═', BoxLines | boxL2 | boxR2},
		{"double cross", '╬', BoxLines | boxL2 | boxR2 | boxU2 | boxD2},
		{"mixed tee", '╞', BoxLines | boxU | boxD | boxR2},
		{"arc corner", '╭', BoxArc | boxD | boxR},
		{"half left", '╴', BoxLines | boxL},
		{"heavy half right", '╺', BoxLines | boxR | boxR2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxDescriptor(tt.r); got != tt.want {
				t.Errorf("BoxDescriptor(%q) = %#x, want %#x", tt.r, got, tt.want)
			}
		})
	}
}

func TestBoxDescriptorBlocks(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want uint16
	}{
		{"upper half", '▀', BoxBlockUp | 4},
		{"lower eighth", '▁', BoxBlockDn | 1},
		{"lower half", '▄', BoxBlockDn | 4},
		{"left half", '▌', BoxBlockLf | 4},
		{"right half", '▐', BoxBlockRt | 4},
		{"full block", '█', BoxQuadrant | boxQuadTL | boxQuadTR | boxQuadBL | boxQuadBR},
		{"light shade", '░', BoxShade | 1},
		{"medium shade", '▒', BoxShade | 2},
		{"dark shade", '▓', BoxShade | 3},
		{"quadrant ul", '▘', BoxQuadrant | boxQuadTL},
		{"quadrant checker", '▚', BoxQuadrant | boxQuadTL | boxQuadBR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxDescriptor(tt.r); got != tt.want {
				t.Errorf("BoxDescriptor(%q) = %#x, want %#x", tt.r, got, tt.want)
			}
		})
	}
}

func TestBoxDescriptorBraille(t *testing.T) {
	if got := BoxDescriptor(0x2800); got != BoxBraille {
		t.Errorf("blank braille: got %#x", got)
	}
	if got := BoxDescriptor(0x28FF); got != BoxBraille|0xFF {
		t.Errorf("full braille: got %#x", got)
	}
	if got := BoxDescriptor(0x2847); got != BoxBraille|0x47 {
		t.Errorf("dot pattern should be the low byte, got %#x", got)
	}
}

func TestBoxDescriptorOutsideRanges(t *testing.T) {
	for _, r := range []rune{'a', ' ', 0x24FF, 0x2600, 0x27FF, 0x2900} {
		if BoxDescriptor(r) != 0 {
			t.Errorf("BoxDescriptor(%#x) should be 0", r)
		}
	}
	// Diagonals are left to the font.
	for _, r := range []rune{'╱', '╲', '╳'} {
		if BoxDescriptor(r) != 0 {
			t.Errorf("diagonal %q should have no descriptor", r)
		}
	}
}

func TestBoxDescriptorFullCoverage(t *testing.T) {
	// Everything in U+2500..U+259F except the diagonals has a descriptor.
	for r := rune(0x2500); r <= 0x259F; r++ {
		if r >= 0x2571 && r <= 0x2573 {
			continue
		}
		if BoxDescriptor(r) == 0 {
			t.Errorf("missing descriptor for %#x (%q)", r, r)
		}
	}
}

func TestBoxCategory(t *testing.T) {
	if boxCategory(BoxLines|boxL|boxR|BoxBold) != BoxLines {
		t.Error("category extraction should ignore the bold bit and params")
	}
	if boxCategory(BoxBraille|0xFF) != BoxBraille {
		t.Error("category extraction should ignore the braille pattern")
	}
}
