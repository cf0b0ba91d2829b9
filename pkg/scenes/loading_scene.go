package scenes

import (
	"context"
	"log"
	"time"

	"github.com/gonewx/springtype/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// LoadingScene 等待字体就绪
//
// 字体在后台加载，场景每帧非阻塞地查询结果；
// 就绪后（无论是目标字体还是后备字体）调用 OnReady 切换到标题场景。
type LoadingScene struct {
	loader  *game.FontLoader
	onReady func(game.FontLoadResult)

	ready bool
	dots  int
	last  time.Time
}

// NewLoadingScene 创建加载场景
//
// 参数:
//   - ctx: 加载的生命周期，取消后后台加载立即放弃等待
//   - loader: 字体加载器
//   - onReady: 字体就绪回调
func NewLoadingScene(ctx context.Context, loader *game.FontLoader, onReady func(game.FontLoadResult)) *LoadingScene {
	loader.Start(ctx)
	return &LoadingScene{
		loader:  loader,
		onReady: onReady,
	}
}

// Update 查询字体加载结果
func (s *LoadingScene) Update(now time.Time) {
	if s.ready {
		return
	}
	if now.Sub(s.last) >= 300*time.Millisecond {
		s.dots = (s.dots + 1) % 4
		s.last = now
	}

	result, ok := s.loader.Poll()
	if !ok {
		return
	}
	s.ready = true
	if result.Fallback {
		log.Printf("[LoadingScene] Using fallback font %s", result.Name)
	}
	if s.onReady != nil {
		s.onReady(result)
	}
}

// Ready 字体是否已就绪
func (s *LoadingScene) Ready() bool {
	return s.ready
}

// Draw 绘制加载提示
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	msg := "Loading font"
	for i := 0; i < s.dots; i++ {
		msg += "."
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}
