// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/embedded"
	"github.com/gonewx/springtype/pkg/game"
	"github.com/gonewx/springtype/pkg/scenes"
	"github.com/gonewx/springtype/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// settingsAppName gdata 存储的应用名
const settingsAppName = "springtype"

// Config 定义应用启动配置
type Config struct {
	// Title 要动画化的标题文本
	Title string
	// FontPath 可变字体文件路径，为空则直接使用后备字体
	FontPath string
	// ConfigPath 调参文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// FontSize 字号覆盖，<= 0 表示使用配置文件中的值
	FontSize float64
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 启动时打开调试覆盖层
	Debug bool
	// TPS 逻辑帧率
	TPS int
	// Width, Height 初始窗口尺寸
	Width, Height int
	// Seed 振荡相位随机种子
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	clock        utils.Clock
	cancel       context.CancelFunc

	windowWidth              int
	windowHeight             int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用代码中的默认调参。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	physics, err := loadPhysicsConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.FontSize > 0 {
		physics.Layout.FontSize = cfg.FontSize
	}
	if cfg.TPS <= 0 {
		cfg.TPS = config.DefaultTPS
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = config.DefaultTitleText
	}

	// 设置存储失败时降级为仅内存设置
	store, err := game.OpenSettingsStore(settingsAppName)
	if err != nil {
		log.Printf("[App] Warning: %v, settings will not persist", err)
		store = nil
	}
	settings := game.NewSettingsManager(store)
	if cfg.Debug {
		settings.SetDebugOverlay(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		clock:        utils.SystemClock{},
		cancel:       cancel,
		windowWidth:  cfg.Width,
		windowHeight: cfg.Height,
	}

	input := utils.NewEbitenInput()
	loader := game.NewFontLoader(cfg.FontPath, physics.Fonts)
	loading := scenes.NewLoadingScene(ctx, loader, func(result game.FontLoadResult) {
		log.Printf("[App] Font ready: %s (fallback=%v)", result.Name, result.Fallback)
		a.sceneManager.SwitchTo(scenes.NewTitleScene(scenes.TitleSceneOptions{
			Title:     cfg.Title,
			Font:      result.Source,
			Config:    physics,
			Input:     input,
			Settings:  settings,
			TPS:       cfg.TPS,
			Seed:      cfg.Seed,
			ActualTPS: ebiten.ActualTPS,
		}))
	})
	a.sceneManager.SwitchTo(loading)

	log.Printf("[App] Starting with title %q", cfg.Title)
	return a, nil
}

// loadPhysicsConfig 显式指定的配置文件出错时返回错误；
// 否则使用嵌入的默认配置，嵌入配置无效时退回代码默认值
func loadPhysicsConfig(path string) (*config.PhysicsConfig, error) {
	if path != "" {
		cfg, err := config.LoadPhysicsConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		log.Printf("[Config] Loaded physics config from %s", path)
		return cfg, nil
	}

	cfg, err := embedded.LoadPhysicsConfig()
	if err != nil {
		log.Printf("[Config] Warning: %v, using built-in defaults", err)
		return config.DefaultPhysicsConfig(), nil
	}
	return cfg, nil
}

// Update 更新逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(a.clock.Now())
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = a.windowWidth > 0 && a.windowHeight > 0
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸始终等于窗口尺寸，标题在视口中居中；
// 尺寸变化转发给场景管理器，由标题场景防抖重建。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight, a.clock.Now())
	// Ebitengine 要求逻辑尺寸为正，零尺寸（最小化）只通知场景
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Close 放弃尚未完成的字体加载并保存设置
func (a *App) Close() error {
	a.cancel()
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings on exit: %w", err)
	}
	return nil
}
