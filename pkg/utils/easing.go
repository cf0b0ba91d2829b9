package utils

import "math"

// 缓动与平滑函数
//
// 逐帧平滑都写成"每名义帧保留 s"的形式，实际系数为 s^(dt × fps)，
// 这样在 30/60/144Hz 下相同的墙钟时间得到相同的衰减。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FrameDecay 返回 dt 秒内的衰减系数 factor^(dt × fps)
//
// 参数:
//   - factor: 每名义帧保留的比例（如阻尼 0.12）
//   - dt: 经过的秒数
//   - fps: 名义帧率
func FrameDecay(factor, dt, fps float64) float64 {
	return math.Pow(factor, dt*fps)
}

// FrameBlend 返回指数滑动平均在 dt 秒内的混合系数 1 - s^(dt × fps)
func FrameBlend(smoothing, dt, fps float64) float64 {
	return 1 - FrameDecay(smoothing, dt, fps)
}

// Smooth 让 current 以帧率无关的方式趋向 target
//
// current += (target - current) × (1 - s^(dt × fps))
func Smooth(current, target, smoothing, dt, fps float64) float64 {
	return current + (target-current)*FrameBlend(smoothing, dt, fps)
}
