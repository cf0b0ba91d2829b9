// springtype - kinetic title animation
//
// 标题中的每个字母都是独立的粒子：弹回原位、被指针推开、
// 相互碰撞，按住鼠标蓄力后松开会发出冲击波把字母吹散。
//
// 操作:
//
//	移动鼠标    - 推开附近的字母
//	按住左键    - 蓄力，字母被吸向指针
//	松开左键    - 从按下位置发出冲击波
//	D          - 切换调试覆盖层
//	F11        - 切换全屏
package main

import (
	"context"
	"log"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/gonewx/springtype/pkg/app"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg := app.Config{
		Title:  config.DefaultTitleText,
		TPS:    config.DefaultTPS,
		Width:  config.DefaultWindowWidth,
		Height: config.DefaultWindowHeight,
	}

	cmd := &cobra.Command{
		Use:   "springtype",
		Short: "Kinetic title animation",
		Long: `springtype - kinetic title animation

Every letter of the title is a particle that springs back home,
reacts to the pointer, collides with its neighbours and is blown
apart by a charge-and-release shockwave.

Controls:
  Mouse move   - Push nearby letters
  Hold button  - Charge, letters are drawn to the pointer
  Release      - Fire a shockwave from the press point
  D            - Toggle debug overlay
  F11          - Toggle fullscreen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Title, "text", cfg.Title, "Title text to animate")
	flags.StringVar(&cfg.FontPath, "font", "", "Path to a variable font (TTF/OTF); Go Regular is used when empty or unreadable")
	flags.StringVar(&cfg.ConfigPath, "config", "", "Path to a physics.yaml override")
	flags.Float64Var(&cfg.FontSize, "size", 0, "Font size in pixels (0 = from config)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&cfg.Debug, "debug", false, "Start with the debug overlay enabled")
	flags.IntVar(&cfg.TPS, "tps", cfg.TPS, "Logic ticks per second")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height")
	flags.Int64Var(&cfg.Seed, "seed", 1, "Random seed for letter oscillation phases")

	if err := fang.Execute(context.Background(), cmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	if cfg.TPS <= 0 {
		cfg.TPS = config.DefaultTPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.DefaultWindowWidth, config.DefaultWindowHeight
	}

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(config.DefaultWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	return runErr
}
