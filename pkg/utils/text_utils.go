package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 可变字体轴标签
var (
	TagWeight = text.MustParseTag("wght")
	TagWidth  = text.MustParseTag("wdth")
	TagSlant  = text.MustParseTag("slnt")
)

// MeasureGlyph 测量单个字形的包围盒尺寸
//
// 宽度取字形的前进宽度，高度取字体行高（ascent + descent），
// 与浏览器中 inline 元素的包围盒一致。
//
// 参数:
//   - face: 字体面，为 nil 时返回 (0, 0)
//   - r: 字符
//
// 返回:
//   - w, h: 尺寸（像素）
func MeasureGlyph(face *text.GoTextFace, r rune) (w, h float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(string(r), face, 0)
}

// QuantizeAxis 将字体轴取值保留一位小数
//
// 字形缓存以轴取值为键，逐帧连续变化的浮点数会让缓存无法命中。
func QuantizeAxis(v float64) float64 {
	return math.Round(v*10) / 10
}

// SetFontAxes 设置字体面的 wght / wdth / slnt 三轴
//
// 非可变字体会忽略这些设置，渲染退化为固定字形。
func SetFontAxes(face *text.GoTextFace, weight, width, slant float64) {
	if face == nil {
		return
	}
	face.SetVariation(TagWeight, float32(QuantizeAxis(weight)))
	face.SetVariation(TagWidth, float32(QuantizeAxis(width)))
	face.SetVariation(TagSlant, float32(QuantizeAxis(slant)))
}
