// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerButton 指针按钮
type PointerButton int

const (
	// PointerPrimary 主按钮（鼠标左键或第一个触摸点）
	PointerPrimary PointerButton = iota
	// PointerSecondary 鼠标右键
	PointerSecondary
	// PointerMiddle 鼠标中键
	PointerMiddle
)

// PointerEvent 一次按下或释放事件
type PointerEvent struct {
	Button  PointerButton
	Pressed bool // true = 按下，false = 释放
	X, Y    float64
}

// InputSource 输入来源
//
// 帧驱动每帧读取一次。桌面/移动端使用 EbitenInput，
// 测试使用 ManualInput 编排合成输入序列。
type InputSource interface {
	// PointerPosition 返回当前指针的视口坐标
	PointerPosition() (x, y float64)

	// AppendPointerEvents 追加本帧发生的按钮事件（按发生顺序）
	AppendPointerEvents(events []PointerEvent) []PointerEvent

	// DebugTogglePressed 本帧是否按下了调试开关键
	DebugTogglePressed() bool

	// TextFocused 是否有文本输入控件持有焦点（此时忽略键盘快捷键）
	TextFocused() bool
}

// EbitenInput 从 Ebitengine 读取鼠标、触摸与键盘输入
//
// 触摸优先于鼠标：第一个触摸点被视为主按钮。
type EbitenInput struct {
	// DebugKey 调试开关键，默认 D
	DebugKey ebiten.Key

	trackedTouch ebiten.TouchID
	touching     bool
	// 保存最后一次触摸位置（触摸释放时已无法读取位置）
	lastTouchX, lastTouchY int

	// 触摸查询，默认直接读 Ebitengine
	appendTouchIDs func([]ebiten.TouchID) []ebiten.TouchID
	touchPosition  func(ebiten.TouchID) (int, int)
	touchIDs       []ebiten.TouchID
}

// NewEbitenInput 创建 Ebitengine 输入源
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		DebugKey:       ebiten.KeyD,
		appendTouchIDs: ebiten.AppendTouchIDs,
		touchPosition:  ebiten.TouchPosition,
	}
}

// PointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func (in *EbitenInput) PointerPosition() (float64, float64) {
	if in.touching {
		in.refreshTrackedTouch()
		return float64(in.lastTouchX), float64(in.lastTouchY)
	}
	in.touchIDs = in.appendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		x, y := in.touchPosition(in.touchIDs[0])
		return float64(x), float64(y)
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// refreshTrackedTouch 被跟踪的触摸点仍按着时读取它的实时位置；
// 已抬起时保留最后位置，释放事件要用到
func (in *EbitenInput) refreshTrackedTouch() {
	in.touchIDs = in.appendTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		if id == in.trackedTouch {
			in.lastTouchX, in.lastTouchY = in.touchPosition(id)
			return
		}
	}
}

// AppendPointerEvents 收集本帧的按下/释放事件
func (in *EbitenInput) AppendPointerEvents(events []PointerEvent) []PointerEvent {
	// 触摸：只跟踪一个触摸点作为主按钮
	if in.touching {
		if inpututil.IsTouchJustReleased(in.trackedTouch) {
			events = append(events, PointerEvent{
				Button: PointerPrimary, Pressed: false,
				X: float64(in.lastTouchX), Y: float64(in.lastTouchY),
			})
			in.touching = false
		} else {
			in.refreshTrackedTouch()
		}
	} else {
		touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
		if len(touchIDs) > 0 {
			in.trackedTouch = touchIDs[0]
			in.touching = true
			in.lastTouchX, in.lastTouchY = in.touchPosition(in.trackedTouch)
			events = append(events, PointerEvent{
				Button: PointerPrimary, Pressed: true,
				X: float64(in.lastTouchX), Y: float64(in.lastTouchY),
			})
		}
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	buttons := []struct {
		mouse  ebiten.MouseButton
		button PointerButton
	}{
		{ebiten.MouseButtonLeft, PointerPrimary},
		{ebiten.MouseButtonRight, PointerSecondary},
		{ebiten.MouseButtonMiddle, PointerMiddle},
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			events = append(events, PointerEvent{Button: b.button, Pressed: true, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			events = append(events, PointerEvent{Button: b.button, Pressed: false, X: x, Y: y})
		}
	}
	return events
}

// DebugTogglePressed 检查调试开关键是否刚刚按下
func (in *EbitenInput) DebugTogglePressed() bool {
	return inpututil.IsKeyJustPressed(in.DebugKey)
}

// TextFocused 桌面端没有文本输入控件
func (in *EbitenInput) TextFocused() bool {
	return false
}

// ManualInput 可编程的输入源，供测试和回放使用
type ManualInput struct {
	X, Y float64

	// Focused 模拟文本输入框持有焦点
	Focused bool

	pending     []PointerEvent
	debugToggle bool
}

// MoveTo 移动指针
func (in *ManualInput) MoveTo(x, y float64) {
	in.X, in.Y = x, y
}

// Press 在当前位置按下按钮
func (in *ManualInput) Press(button PointerButton) {
	in.pending = append(in.pending, PointerEvent{Button: button, Pressed: true, X: in.X, Y: in.Y})
}

// Release 在当前位置释放按钮
func (in *ManualInput) Release(button PointerButton) {
	in.pending = append(in.pending, PointerEvent{Button: button, Pressed: false, X: in.X, Y: in.Y})
}

// ToggleDebug 模拟按下调试开关键
func (in *ManualInput) ToggleDebug() {
	in.debugToggle = true
}

// PointerPosition 返回当前指针位置
func (in *ManualInput) PointerPosition() (float64, float64) {
	return in.X, in.Y
}

// AppendPointerEvents 交出排队的事件，每个事件只会被消费一次
func (in *ManualInput) AppendPointerEvents(events []PointerEvent) []PointerEvent {
	events = append(events, in.pending...)
	in.pending = in.pending[:0]
	return events
}

// DebugTogglePressed 返回并清除调试开关按键
func (in *ManualInput) DebugTogglePressed() bool {
	pressed := in.debugToggle
	in.debugToggle = false
	return pressed
}

// TextFocused 返回模拟的焦点状态
func (in *ManualInput) TextFocused() bool {
	return in.Focused
}
