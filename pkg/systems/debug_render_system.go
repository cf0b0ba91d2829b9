package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// chargeMeterRadius 蓄力环半径（像素）
	chargeMeterRadius = 28
	// chargeMeterSegments 整圈的线段数
	chargeMeterSegments = 48
)

var chargeMeterColor = color.NRGBA{R: 255, G: 200, B: 60, A: 220}

// DebugRenderSystem 调试覆盖层
//
// 覆盖层图像每帧清空后重绘：冲击波圆环、指针附近的蓄力环和一行 HUD。
// 关闭调试模式时清空覆盖层，正常渲染完全不受影响。
type DebugRenderSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig

	overlay *ebiten.Image

	// 蓄力环显示值用弹簧追赶真实蓄力比例，松开后平滑回落
	meterSpring harmonica.Spring
	meterPos    float64
	meterVel    float64
}

// NewDebugRenderSystem 创建调试覆盖层
//
// 参数:
//   - em: 实体管理器
//   - cfg: 调参配置（圆环颜色、线宽）
//   - tps: 逻辑帧率，弹簧按此步进
func NewDebugRenderSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig, tps int) *DebugRenderSystem {
	if tps <= 0 {
		tps = config.DefaultTPS
	}
	return &DebugRenderSystem{
		entityManager: em,
		config:        cfg,
		meterSpring:   harmonica.NewSpring(harmonica.FPS(tps), 6.0, 0.8),
	}
}

// Update 推进蓄力环弹簧，每个逻辑帧调用一次
func (s *DebugRenderSystem) Update(pointer *components.PointerState) {
	target := 0.0
	if pointer != nil && pointer.Pressed {
		target = pointer.ChargeRatio
	}
	s.meterPos, s.meterVel = s.meterSpring.Update(s.meterPos, s.meterVel, target)
}

// MeterValue 返回蓄力环当前显示值
func (s *DebugRenderSystem) MeterValue() float64 {
	return s.meterPos
}

// Reset 清空覆盖层并让蓄力环归零
func (s *DebugRenderSystem) Reset() {
	if s.overlay != nil {
		s.overlay.Clear()
	}
	s.meterPos, s.meterVel = 0, 0
}

// Draw 绘制调试覆盖层
//
// 参数:
//   - screen: 目标图像
//   - pointer: 指针状态（可为 nil）
//   - letters: 活动字母数量
//   - tps: 实际逻辑帧率
func (s *DebugRenderSystem) Draw(screen *ebiten.Image, pointer *components.PointerState, letters int, tps float64) {
	s.ensureOverlay(screen)
	s.overlay.Clear()

	ringColor := s.config.ShockwaveRingColor()
	lineWidth := float32(s.config.Debug.ShockwaveLineWidth)
	waves := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ShockwaveComponent](s.entityManager) {
		wave, ok := ecs.GetComponent[*components.ShockwaveComponent](s.entityManager, id)
		if !ok || s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		waves++
		if wave.Radius <= 0 {
			continue
		}
		vector.StrokeCircle(s.overlay, float32(wave.OriginX), float32(wave.OriginY), float32(wave.Radius), lineWidth, ringColor, true)
	}

	if pointer != nil && s.meterPos > 0.001 {
		s.drawChargeMeter(pointer.X, pointer.Y, s.meterPos)
	}

	screen.DrawImage(s.overlay, nil)

	hud := fmt.Sprintf("letters: %d  shockwaves: %d  charge: %.2f  TPS: %.0f", letters, waves, s.meterPos, tps)
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
}

// drawChargeMeter 以折线近似绘制比例为 ratio 的圆弧，从正上方顺时针展开
func (s *DebugRenderSystem) drawChargeMeter(cx, cy, ratio float64) {
	ratio = math.Min(ratio, 1)
	segments := int(math.Ceil(ratio * chargeMeterSegments))
	start := -math.Pi / 2
	sweep := ratio * 2 * math.Pi

	prevX := cx + chargeMeterRadius*math.Cos(start)
	prevY := cy + chargeMeterRadius*math.Sin(start)
	for i := 1; i <= segments; i++ {
		angle := start + sweep*float64(i)/float64(segments)
		x := cx + chargeMeterRadius*math.Cos(angle)
		y := cy + chargeMeterRadius*math.Sin(angle)
		vector.StrokeLine(s.overlay, float32(prevX), float32(prevY), float32(x), float32(y), 3, chargeMeterColor, true)
		prevX, prevY = x, y
	}
}

// ensureOverlay 覆盖层与屏幕同尺寸，屏幕尺寸变化时重建
func (s *DebugRenderSystem) ensureOverlay(screen *ebiten.Image) {
	bounds := screen.Bounds()
	if s.overlay != nil && s.overlay.Bounds().Eq(bounds) {
		return
	}
	if s.overlay != nil {
		s.overlay.Deallocate()
	}
	s.overlay = ebiten.NewImage(bounds.Dx(), bounds.Dy())
}
