package components

import "fmt"

// FontAxes 可变字体三轴取值
type FontAxes struct {
	Weight float64 // wght
	Width  float64 // wdth
	Slant  float64 // slnt
}

// LetterAppearanceComponent 字母的外观状态
//
// 当前值（ScaleX、Axes、Rotation）按指数滑动平均追赶物理目标值，
// 平滑过程中不做范围限制，只在输出 Style 时叠加振荡并限制到合法范围。
type LetterAppearanceComponent struct {
	ScaleX, ScaleY             float64
	TargetScaleX, TargetScaleY float64

	Axes       FontAxes
	TargetAxes FontAxes

	// Rotation 当前旋转角（度）
	Rotation       float64
	TargetRotation float64

	// 振荡相位，初始化时随机，使各字母不同步
	PhaseWeight float64
	PhaseWidth  float64
	PhaseSlant  float64
	PhaseScaleX float64
	PhaseScaleY float64

	// Style 本帧输出
	Style LetterStyle
}

// LetterStyle 每帧输出给渲染层的最终样式
type LetterStyle struct {
	TranslateX, TranslateY float64
	Rotation               float64 // 度
	ScaleX, ScaleY         float64
	Axes                   FontAxes

	// SpeedRatio 归一化速度，调试覆盖层着色用
	SpeedRatio float64
}

// TransformString 以 CSS transform 语法描述本帧变换（日志与诊断用）
func (s LetterStyle) TransformString() string {
	return fmt.Sprintf("translate(%.2fpx, %.2fpx) rotate(%.2fdeg) scale(%.2f, %.2f)",
		s.TranslateX, s.TranslateY, s.Rotation, s.ScaleX, s.ScaleY)
}

// FontVariationString 以 font-variation-settings 语法描述三轴取值
func (s LetterStyle) FontVariationString() string {
	return fmt.Sprintf(`"wght" %.1f, "wdth" %.1f, "slnt" %.1f`,
		s.Axes.Weight, s.Axes.Width, s.Axes.Slant)
}
