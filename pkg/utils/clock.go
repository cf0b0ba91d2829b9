package utils

import "time"

// Clock 时间来源
//
// 帧驱动通过 Clock 取当前时刻；测试使用 ManualClock 推进合成时间。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

// Now 返回当前系统时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟
type ManualClock struct {
	T time.Time
}

// NewManualClock 创建从固定时刻开始的时钟
func NewManualClock() *ManualClock {
	return &ManualClock{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now 返回当前合成时刻
func (c *ManualClock) Now() time.Time {
	return c.T
}

// Advance 推进时钟并返回新时刻
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.T = c.T.Add(d)
	return c.T
}

// Debouncer 合并短时间内的连续触发
//
// 每次 Trigger 都会把截止时间推迟到 now + Delay；
// Fire 在截止时间到达后返回一次 true。
type Debouncer struct {
	Delay time.Duration

	deadline time.Time
	pending  bool
}

// Trigger 记录一次触发
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.Delay)
	d.pending = true
}

// Pending 是否有尚未触发的请求
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Fire 截止时间已到则清除挂起状态并返回 true
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

// Cancel 取消挂起的请求
func (d *Debouncer) Cancel() {
	d.pending = false
}
