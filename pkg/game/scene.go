package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (font loading, title animation).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene to the given instant.
	// Scenes derive their own elapsed time from consecutive calls,
	// so tests can drive them with a synthetic clock.
	Update(now time.Time)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收视口尺寸变化
//
// 实现此接口的场景会在以下时机被调用 Resize()：
//   - 场景被切换为当前场景时（使用最近一次已知的尺寸）
//   - 窗口尺寸发生变化时
type Resizable interface {
	Resize(width, height int, now time.Time)
}
