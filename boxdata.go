package vterm

// Box descriptor categories. A descriptor is a 16-bit value combining one
// category with a category-specific parameter in the low byte. BoxBold is a
// modifier bit a renderer may OR onto a line descriptor for bold cells.
const (
	BoxLines    uint16 = 1 << 8 // straight line segments
	BoxArc      uint16 = 2 << 8 // rounded corners
	BoxBlockDn  uint16 = 3 << 8 // block rising from the bottom, eighths
	BoxBlockUp  uint16 = 4 << 8 // block hanging from the top, eighths
	BoxBlockLf  uint16 = 5 << 8 // block anchored left, eighths
	BoxBlockRt  uint16 = 6 << 8 // block anchored right, eighths
	BoxQuadrant uint16 = 7 << 8 // quadrant fills
	BoxShade    uint16 = 8 << 8 // shade fills, quarters of alpha
	BoxBraille  uint16 = 9 << 8 // braille dot pattern in the low byte
	BoxBold     uint16 = 1 << 15
)

// boxCategoryMask extracts the category from a descriptor.
const boxCategoryMask uint16 = 0x0F00

// Line-side parameter bits for BoxLines and BoxArc. A side drawn heavy sets
// both its light and double bit.
const (
	boxL uint16 = 1 << iota // light left
	boxU                    // light up
	boxR                    // light right
	boxD                    // light down
	boxL2                   // double left
	boxU2                   // double up
	boxR2                   // double right
	boxD2                   // double down
)

// Quadrant parameter bits for BoxQuadrant.
const (
	boxQuadTL uint16 = 1 << iota
	boxQuadTR
	boxQuadBL
	boxQuadBR
)

// boxData maps U+2500..U+259F to descriptors. Dashed variants fall back to
// their solid counterparts; diagonals are left to the font.
var boxData = [0xA0]uint16{
	0x00: BoxLines | boxL | boxR,                                         // ─
	0x01: BoxLines | boxL | boxR | boxL2 | boxR2,                         // ━
	0x02: BoxLines | boxU | boxD,                                         // │
	0x03: BoxLines | boxU | boxD | boxU2 | boxD2,                         // ┃
	0x04: BoxLines | boxL | boxR,                                         // ┄
	0x05: BoxLines | boxL | boxR | boxL2 | boxR2,                         // ┅
	0x06: BoxLines | boxU | boxD,                                         // ┆
	0x07: BoxLines | boxU | boxD | boxU2 | boxD2,                         // ┇
	0x08: BoxLines | boxL | boxR,                                         // ┈
	0x09: BoxLines | boxL | boxR | boxL2 | boxR2,                         // ┉
	0x0A: BoxLines | boxU | boxD,                                         // ┊
	0x0B: BoxLines | boxU | boxD | boxU2 | boxD2,                         // ┋
	0x0C: BoxLines | boxD | boxR,                                         // ┌
	0x0D: BoxLines | boxD | boxR | boxR2,                                 // ┍
	0x0E: BoxLines | boxD | boxD2 | boxR,                                 // ┎
	0x0F: BoxLines | boxD | boxR | boxD2 | boxR2,                         // ┏
	0x10: BoxLines | boxD | boxL,                                         // ┐
	0x11: BoxLines | boxD | boxL | boxL2,                                 // ┑
	0x12: BoxLines | boxD | boxD2 | boxL,                                 // ┒
	0x13: BoxLines | boxD | boxL | boxD2 | boxL2,                         // ┓
	0x14: BoxLines | boxU | boxR,                                         // └
	0x15: BoxLines | boxU | boxR | boxR2,                                 // ┕
	0x16: BoxLines | boxU | boxU2 | boxR,                                 // ┖
	0x17: BoxLines | boxU | boxR | boxU2 | boxR2,                         // ┗
	0x18: BoxLines | boxU | boxL,                                         // ┘
	0x19: BoxLines | boxU | boxL | boxL2,                                 // ┙
	0x1A: BoxLines | boxU | boxU2 | boxL,                                 // ┚
	0x1B: BoxLines | boxU | boxL | boxU2 | boxL2,                         // ┛
	0x1C: BoxLines | boxU | boxD | boxR,                                  // ├
	0x1D: BoxLines | boxU | boxD | boxR | boxR2,                          // ┝
	0x1E: BoxLines | boxU | boxU2 | boxD | boxR,                          // ┞
	0x1F: BoxLines | boxU | boxD | boxD2 | boxR,                          // ┟
	0x20: BoxLines | boxU | boxD | boxU2 | boxD2 | boxR,                  // ┠
	0x21: BoxLines | boxU | boxD | boxR | boxU2 | boxR2,                  // ┡
	0x22: BoxLines | boxU | boxD | boxR | boxD2 | boxR2,                  // ┢
	0x23: BoxLines | boxU | boxD | boxR | boxU2 | boxD2 | boxR2,          // ┣
	0x24: BoxLines | boxU | boxD | boxL,                                  // ┤
	0x25: BoxLines | boxU | boxD | boxL | boxL2,                          // ┥
	0x26: BoxLines | boxU | boxU2 | boxD | boxL,                          // ┦
	0x27: BoxLines | boxU | boxD | boxD2 | boxL,                          // ┧
	0x28: BoxLines | boxU | boxD | boxU2 | boxD2 | boxL,                  // ┨
	0x29: BoxLines | boxU | boxD | boxL | boxU2 | boxL2,                  // ┩
	0x2A: BoxLines | boxU | boxD | boxL | boxD2 | boxL2,                  // ┪
	0x2B: BoxLines | boxU | boxD | boxL | boxU2 | boxD2 | boxL2,          // ┫
	0x2C: BoxLines | boxL | boxR | boxD,                                  // ┬
	0x2D: BoxLines | boxL | boxL2 | boxR | boxD,                          // ┭
	0x2E: BoxLines | boxL | boxR | boxR2 | boxD,                          // ┮
	0x2F: BoxLines | boxL | boxR | boxL2 | boxR2 | boxD,                  // ┯
	0x30: BoxLines | boxL | boxR | boxD | boxD2,                          // ┰
	0x31: BoxLines | boxL | boxL2 | boxR | boxD | boxD2,                  // ┱
	0x32: BoxLines | boxL | boxR | boxR2 | boxD | boxD2,                  // ┲
	0x33: BoxLines | boxL | boxR | boxD | boxL2 | boxR2 | boxD2,          // ┳
	0x34: BoxLines | boxL | boxR | boxU,                                  // ┴
	0x35: BoxLines | boxL | boxL2 | boxR | boxU,                          // ┵
	0x36: BoxLines | boxL | boxR | boxR2 | boxU,                          // ┶
	0x37: BoxLines | boxL | boxR | boxL2 | boxR2 | boxU,                  // ┷
	0x38: BoxLines | boxL | boxR | boxU | boxU2,                          // ┸
	0x39: BoxLines | boxL | boxL2 | boxR | boxU | boxU2,                  // ┹
	0x3A: BoxLines | boxL | boxR | boxR2 | boxU | boxU2,                  // ┺
	0x3B: BoxLines | boxL | boxR | boxU | boxL2 | boxR2 | boxU2,          // ┻
	0x3C: BoxLines | boxL | boxR | boxU | boxD,                           // ┼
	0x3D: BoxLines | boxL | boxR | boxU | boxD | boxL2,                   // ┽
	0x3E: BoxLines | boxL | boxR | boxU | boxD | boxR2,                   // ┾
	0x3F: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxR2,           // ┿
	0x40: BoxLines | boxL | boxR | boxU | boxD | boxU2,                   // ╀
	0x41: BoxLines | boxL | boxR | boxU | boxD | boxD2,                   // ╁
	0x42: BoxLines | boxL | boxR | boxU | boxD | boxU2 | boxD2,           // ╂
	0x43: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxU2,           // ╃
	0x44: BoxLines | boxL | boxR | boxU | boxD | boxR2 | boxU2,           // ╄
	0x45: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxD2,           // ╅
	0x46: BoxLines | boxL | boxR | boxU | boxD | boxR2 | boxD2,           // ╆
	0x47: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxR2 | boxU2,   // ╇
	0x48: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxR2 | boxD2,   // ╈
	0x49: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxU2 | boxD2,   // ╉
	0x4A: BoxLines | boxL | boxR | boxU | boxD | boxR2 | boxU2 | boxD2,   // ╊
	0x4B: BoxLines | boxL | boxR | boxU | boxD | boxL2 | boxR2 | boxU2 | boxD2, // ╋
	0x4C: BoxLines | boxL | boxR,                                         // ╌
	0x4D: BoxLines | boxL | boxR | boxL2 | boxR2,                         // ╍
	0x4E: BoxLines | boxU | boxD,                                         // ╎
	0x4F: BoxLines | boxU | boxD | boxU2 | boxD2,                         // ╏
	0x50: BoxLines | boxL2 | boxR2,                                       // ═
	0x51: BoxLines | boxU2 | boxD2,                                       // ║
	0x52: BoxLines | boxD | boxR2,                                        // ╒
	0x53: BoxLines | boxD2 | boxR,                                        // ╓
	0x54: BoxLines | boxD2 | boxR2,                                       // ╔
	0x55: BoxLines | boxD | boxL2,                                        // ╕
	0x56: BoxLines | boxD2 | boxL,                                        // ╖
	0x57: BoxLines | boxD2 | boxL2,                                       // ╗
	0x58: BoxLines | boxU | boxR2,                                        // ╘
	0x59: BoxLines | boxU2 | boxR,                                        // ╙
	0x5A: BoxLines | boxU2 | boxR2,                                       // ╚
	0x5B: BoxLines | boxU | boxL2,                                        // ╛
	0x5C: BoxLines | boxU2 | boxL,                                        // ╜
	0x5D: BoxLines | boxU2 | boxL2,                                       // ╝
	0x5E: BoxLines | boxU | boxD | boxR2,                                 // ╞
	0x5F: BoxLines | boxU2 | boxD2 | boxR,                                // ╟
	0x60: BoxLines | boxU2 | boxD2 | boxR2,                               // ╠
	0x61: BoxLines | boxU | boxD | boxL2,                                 // ╡
	0x62: BoxLines | boxU2 | boxD2 | boxL,                                // ╢
	0x63: BoxLines | boxU2 | boxD2 | boxL2,                               // ╣
	0x64: BoxLines | boxL2 | boxR2 | boxD,                                // ╤
	0x65: BoxLines | boxL | boxR | boxD2,                                 // ╥
	0x66: BoxLines | boxL2 | boxR2 | boxD2,                               // ╦
	0x67: BoxLines | boxL2 | boxR2 | boxU,                                // ╧
	0x68: BoxLines | boxL | boxR | boxU2,                                 // ╨
	0x69: BoxLines | boxL2 | boxR2 | boxU2,                               // ╩
	0x6A: BoxLines | boxU | boxD | boxL2 | boxR2,                         // ╪
	0x6B: BoxLines | boxL | boxR | boxU2 | boxD2,                         // ╫
	0x6C: BoxLines | boxL2 | boxR2 | boxU2 | boxD2,                       // ╬
	0x6D: BoxArc | boxD | boxR,                                           // ╭
	0x6E: BoxArc | boxD | boxL,                                           // ╮
	0x6F: BoxArc | boxU | boxL,                                           // ╯
	0x70: BoxArc | boxU | boxR,                                           // ╰
	// 0x71..0x73 (╱ ╲ ╳) are left to the font.
	0x74: BoxLines | boxL,                                                // ╴
	0x75: BoxLines | boxU,                                                // ╵
	0x76: BoxLines | boxR,                                                // ╶
	0x77: BoxLines | boxD,                                                // ╷
	0x78: BoxLines | boxL | boxL2,                                        // ╸
	0x79: BoxLines | boxU | boxU2,                                        // ╹
	0x7A: BoxLines | boxR | boxR2,                                        // ╺
	0x7B: BoxLines | boxD | boxD2,                                        // ╻
	0x7C: BoxLines | boxL | boxR | boxR2,                                 // ╼
	0x7D: BoxLines | boxU | boxD | boxD2,                                 // ╽
	0x7E: BoxLines | boxL | boxL2 | boxR,                                 // ╾
	0x7F: BoxLines | boxU | boxU2 | boxD,                                 // ╿
	0x80: BoxBlockUp | 4,                                                 // ▀
	0x81: BoxBlockDn | 1,                                                 // ▁
	0x82: BoxBlockDn | 2,                                                 // ▂
	0x83: BoxBlockDn | 3,                                                 // ▃
	0x84: BoxBlockDn | 4,                                                 // ▄
	0x85: BoxBlockDn | 5,                                                 // ▅
	0x86: BoxBlockDn | 6,                                                 // ▆
	0x87: BoxBlockDn | 7,                                                 // ▇
	0x88: BoxQuadrant | boxQuadTL | boxQuadTR | boxQuadBL | boxQuadBR,    // █
	0x89: BoxBlockLf | 7,                                                 // ▉
	0x8A: BoxBlockLf | 6,                                                 // ▊
	0x8B: BoxBlockLf | 5,                                                 // ▋
	0x8C: BoxBlockLf | 4,                                                 // ▌
	0x8D: BoxBlockLf | 3,                                                 // ▍
	0x8E: BoxBlockLf | 2,                                                 // ▎
	0x8F: BoxBlockLf | 1,                                                 // ▏
	0x90: BoxBlockRt | 4,                                                 // ▐
	0x91: BoxShade | 1,                                                   // ░
	0x92: BoxShade | 2,                                                   // ▒
	0x93: BoxShade | 3,                                                   // ▓
	0x94: BoxBlockUp | 1,                                                 // ▔
	0x95: BoxBlockRt | 1,                                                 // ▕
	0x96: BoxQuadrant | boxQuadBL,                                        // ▖
	0x97: BoxQuadrant | boxQuadBR,                                        // ▗
	0x98: BoxQuadrant | boxQuadTL,                                        // ▘
	0x99: BoxQuadrant | boxQuadTL | boxQuadBL | boxQuadBR,                // ▙
	0x9A: BoxQuadrant | boxQuadTL | boxQuadBR,                            // ▚
	0x9B: BoxQuadrant | boxQuadTL | boxQuadTR | boxQuadBL,                // ▛
	0x9C: BoxQuadrant | boxQuadTL | boxQuadTR | boxQuadBR,                // ▜
	0x9D: BoxQuadrant | boxQuadTR,                                        // ▝
	0x9E: BoxQuadrant | boxQuadTR | boxQuadBL,                            // ▞
	0x9F: BoxQuadrant | boxQuadTR | boxQuadBL | boxQuadBR,                // ▟
}

// BoxDescriptor returns the descriptor for a box-drawing, block-element, or
// braille code point, or 0 when the character has none and should be drawn
// from the font.
func BoxDescriptor(r rune) uint16 {
	switch {
	case r >= 0x2500 && r <= 0x259F:
		return boxData[r-0x2500]
	case r >= 0x2800 && r <= 0x28FF:
		return BoxBraille | uint16(r&0xFF)
	}
	return 0
}

// IsBoxDraw returns true if the code point has a geometric descriptor.
func IsBoxDraw(r rune) bool {
	return BoxDescriptor(r) != 0
}

// boxCategory extracts the descriptor category, ignoring the bold bit.
func boxCategory(desc uint16) uint16 {
	return desc & boxCategoryMask
}
