package scenes

import (
	"errors"
	"image/color"
	"log"
	"time"

	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/entities"
	"github.com/gonewx/springtype/pkg/game"
	"github.com/gonewx/springtype/pkg/systems"
	"github.com/gonewx/springtype/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// backgroundColor 标题场景背景色
var backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}

// TitleSceneOptions 标题场景参数
type TitleSceneOptions struct {
	Title    string
	Font     *text.GoTextFaceSource
	Config   *config.PhysicsConfig
	Input    utils.InputSource
	Settings *game.SettingsManager

	// TPS 逻辑帧率，调试蓄力环的弹簧按此步进
	TPS int
	// Seed 振荡相位随机种子
	Seed int64
	// ActualTPS 返回实际逻辑帧率（HUD 用），可为 nil
	ActualTPS func() float64
}

// TitleScene 标题动画场景
//
// 负责字母注册表的生命周期：首次获得视口尺寸时立即初始化，
// 之后的尺寸变化先暂停模拟，防抖结束后整体重建。
type TitleScene struct {
	opts TitleSceneOptions

	sim         *Simulation
	render      *systems.RenderSystem
	debugRender *systems.DebugRenderSystem
	measurer    entities.GlyphMeasurer

	resize        utils.Debouncer
	width, height int
	initialized   bool
}

// NewTitleScene 创建标题场景
//
// 字体源为 nil 时场景仍可推进模拟，但所有字形都会被跳过。
func NewTitleScene(opts TitleSceneOptions) *TitleScene {
	if opts.Config == nil {
		opts.Config = config.DefaultPhysicsConfig()
	}
	if opts.Settings == nil {
		opts.Settings = game.NewSettingsManager(nil)
	}

	scene := &TitleScene{
		opts:   opts,
		sim:    NewSimulation(opts.Config, opts.Input, opts.Seed),
		resize: utils.Debouncer{Delay: opts.Config.Layout.ResizeDebounce},
	}
	scene.render = systems.NewRenderSystem(scene.sim.EntityManager())
	scene.debugRender = systems.NewDebugRenderSystem(scene.sim.EntityManager(), opts.Config, opts.TPS)
	scene.sim.SetDebugToggleHandler(scene.toggleDebug)

	if opts.Font != nil {
		scene.measurer = game.NewFaceMeasurer(opts.Font, opts.Config.Layout.FontSize, opts.Config.FontAxes)
	}
	return scene
}

// Resize 接收视口尺寸变化
func (s *TitleScene) Resize(width, height int, now time.Time) {
	s.width, s.height = width, height
	if !s.initialized {
		s.initialized = true
		s.rebuild(now)
		return
	}
	s.sim.Stop()
	s.resize.Trigger(now)
}

// Update 推进场景
func (s *TitleScene) Update(now time.Time) {
	if s.resize.Fire(now) {
		log.Printf("[TitleScene] Recalculating on resize (%dx%d)", s.width, s.height)
		s.rebuild(now)
	}
	s.sim.Step(now)
	s.debugRender.Update(s.sim.Pointer())
}

// Draw 绘制场景
func (s *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	cx, cy, _, _ := s.sim.Container()
	debug := s.opts.Settings.GetSettings().DebugOverlay
	s.render.Draw(screen, cx, cy, debug)

	if debug {
		tps := 0.0
		if s.opts.ActualTPS != nil {
			tps = s.opts.ActualTPS()
		}
		s.debugRender.Draw(screen, s.sim.Pointer(), len(s.sim.Letters()), tps)
	}
}

// Simulation 返回帧驱动
func (s *TitleScene) Simulation() *Simulation {
	return s.sim
}

// ResizePending 是否有尚未执行的重建
func (s *TitleScene) ResizePending() bool {
	return s.resize.Pending()
}

func (s *TitleScene) rebuild(now time.Time) {
	s.resize.Cancel()
	s.debugRender.Reset()

	var faces entities.FaceFactory
	if s.opts.Font != nil {
		src, size := s.opts.Font, s.opts.Config.Layout.FontSize
		faces = func() *text.GoTextFace { return game.NewLetterFace(src, size) }
	}

	measurer := s.measurer
	if measurer == nil {
		measurer = emptyMeasurer{}
	}

	err := s.sim.Initialize(s.opts.Title, measurer, faces, float64(s.width), float64(s.height), now)
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrNoContainer):
		log.Printf("[TitleScene] Container has zero size, waiting for resize")
	default:
		log.Printf("[TitleScene] Initialization failed: %v", err)
	}
}

func (s *TitleScene) toggleDebug() {
	if !s.opts.Settings.ToggleDebugOverlay() {
		s.debugRender.Reset()
	}
}

// emptyMeasurer 没有字体时所有字形尺寸为零
type emptyMeasurer struct{}

func (emptyMeasurer) MeasureGlyph(rune) (float64, float64) { return 0, 0 }
