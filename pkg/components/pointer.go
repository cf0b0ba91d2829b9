package components

import "time"

// PointerState 指针与蓄力手势状态
//
// 坐标均为视口坐标。VX/VY 是本帧相对上一帧的位移（不除以 dt）。
type PointerState struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64

	// Pressed 主按钮按下（蓄力中）
	Pressed bool
	// PressStart 按下时刻
	PressStart time.Time
	// PressX, PressY 按下位置，冲击波从这里发出而不是松开位置
	PressX, PressY float64

	// ChargeRatio 本帧的蓄力比例 [0, 1]
	ChargeRatio float64
}

// Reset 将指针放到视口中心并清除手势状态
func (p *PointerState) Reset(centerX, centerY float64) {
	*p = PointerState{
		X: centerX, Y: centerY,
		PrevX: centerX, PrevY: centerY,
	}
}
