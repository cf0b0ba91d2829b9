package components

import "time"

// ShockwaveComponent 冲击波记录
//
// 原点使用视口坐标（与指针输入一致），字母位置需加上容器偏移后再比较。
type ShockwaveComponent struct {
	OriginX, OriginY float64
	StartTime        time.Time
	Strength         float64

	// Radius 当前波前半径 = 年龄 × 扩张速度，每帧更新
	Radius float64
	// Age 自创建以来的秒数，每帧更新
	Age float64
}
