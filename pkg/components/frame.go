package components

import "time"

// FrameContext 单帧上下文，由帧驱动构造并依次传给各系统
type FrameContext struct {
	// Now 本帧时刻
	Now time.Time
	// DeltaTime 距上一帧的秒数，已限制在 [0, MaxDeltaTime]
	DeltaTime float64
	// Elapsed 自模拟启动以来的秒数（振荡相位用）
	Elapsed float64

	// ContainerX, ContainerY 容器左上角的视口坐标
	ContainerX, ContainerY float64

	// Pointer 当前指针状态
	Pointer *PointerState
}

// PointerLocal 返回指针在容器局部坐标中的位置
func (f *FrameContext) PointerLocal() (float64, float64) {
	if f.Pointer == nil {
		return 0, 0
	}
	return f.Pointer.X - f.ContainerX, f.Pointer.Y - f.ContainerY
}
