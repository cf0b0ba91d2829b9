package components

import "math"

// LetterBodyComponent 字母粒子的物理状态
//
// 坐标系：相对于标题容器左上角（容器局部坐标）。
// Home 在初始化后不变，只有窗口尺寸变化触发的整体重建会重新计算。
type LetterBodyComponent struct {
	// HomeX, HomeY 静止位置（字形中心）
	HomeX, HomeY float64

	// X, Y 当前位置
	X, Y float64

	// VX, VY 当前速度（像素/名义帧）
	VX, VY float64

	// Width, Height 初始化时测得的字形尺寸
	Width, Height float64

	// Speed 力累加阶段结束时缓存的速度大小，外观映射直接复用
	Speed float64

	// RecentlyImpulsed 被冲击波击中后为 true，期间暂停回家弹簧，
	// 速度降到阈值以下后清除
	RecentlyImpulsed bool
}

// RefreshSpeed 重新计算并缓存速度大小
func (b *LetterBodyComponent) RefreshSpeed() float64 {
	b.Speed = math.Sqrt(b.VX*b.VX + b.VY*b.VY)
	return b.Speed
}

// Offset 返回相对静止位置的位移
func (b *LetterBodyComponent) Offset() (dx, dy float64) {
	return b.X - b.HomeX, b.Y - b.HomeY
}
