package components

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// GlyphComponent 字母的渲染目标
//
// 每个字母独占一个 GoTextFace，避免逐帧设置字体轴时相互影响。
type GlyphComponent struct {
	Char  rune
	Index int // 在标题字符串中的位置（按 rune 计）

	// Face 字母专属字体面，可为 nil（无头测试时）
	Face *text.GoTextFace
}
