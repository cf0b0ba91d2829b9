// verify_physics 无窗口运行标题模拟，比较不同帧率下的轨迹
//
// 用合成时钟和脚本化输入驱动 Simulation：先把字母推离原位，
// 再短按发出一次冲击波，最后统计每个帧率下字母回到原位所需的时间。
//
// 用法:
//
//	go run ./cmd/verify_physics --fps 30,60,144 --config data/physics.yaml
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/game"
	"github.com/gonewx/springtype/pkg/scenes"
	"github.com/gonewx/springtype/pkg/utils"
	"github.com/spf13/cobra"
)

const (
	viewportWidth  = 1024
	viewportHeight = 576
)

// settleThreshold 最大偏移低于此值视为静止（像素）
const settleThreshold = 0.5

// runResult 单个帧率的运行结果
type runResult struct {
	fps          int
	peakOffset   float64
	settleTime   time.Duration
	settled      bool
	shockwaveEnd time.Duration
}

func main() {
	var (
		title      string
		configPath string
		rates      []int
		duration   time.Duration
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "verify_physics",
		Short: "Run the title simulation headless at several frame rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				log.SetOutput(io.Discard)
			}

			cfg := config.DefaultPhysicsConfig()
			if configPath != "" {
				loaded, err := config.LoadPhysicsConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			src, err := game.FallbackFontSource()
			if err != nil {
				return fmt.Errorf("failed to load fallback font: %w", err)
			}
			measurer := game.NewFaceMeasurer(src, cfg.Layout.FontSize, cfg.FontAxes)

			fmt.Printf("%-6s %-12s %-12s %-14s\n", "FPS", "PeakOffset", "SettleTime", "ShockwaveGone")
			for _, fps := range rates {
				r, err := runAt(fps, title, cfg, measurer, duration)
				if err != nil {
					return err
				}
				settle := "never"
				if r.settled {
					settle = r.settleTime.Round(time.Millisecond).String()
				}
				fmt.Printf("%-6d %-12.2f %-12s %-14s\n", r.fps, r.peakOffset, settle, r.shockwaveEnd.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "text", config.DefaultTitleText, "Title text")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a physics.yaml override")
	cmd.Flags().IntSliceVar(&rates, "fps", []int{30, 60, 144}, "Frame rates to compare")
	cmd.Flags().DurationVar(&duration, "duration", 40*time.Second, "Simulated time per run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show simulation logs")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runAt 在指定帧率下执行脚本：移动指针扫过标题，然后在标题左侧短按一次
func runAt(fps int, title string, cfg *config.PhysicsConfig, measurer *game.FaceMeasurer, duration time.Duration) (runResult, error) {
	if fps <= 0 {
		return runResult{}, fmt.Errorf("invalid frame rate %d", fps)
	}

	clock := utils.NewManualClock()
	input := &utils.ManualInput{}
	sim := scenes.NewSimulation(cfg, input, 1)
	if err := sim.Initialize(title, measurer, nil, viewportWidth, viewportHeight, clock.Now()); err != nil {
		return runResult{}, fmt.Errorf("failed to initialize at %d fps: %w", fps, err)
	}

	result := runResult{fps: fps}
	frame := time.Second / time.Duration(fps)
	cx, cy, cw, ch := sim.Container()
	start := clock.Now()

	// 指针从左到右扫过标题，用时 1 秒
	sweepFrames := fps
	for i := 0; i <= sweepFrames; i++ {
		input.MoveTo(cx+cw*float64(i)/float64(sweepFrames), cy+ch/2)
		sim.Step(clock.Advance(frame))
	}

	// 移到标题左侧短按
	input.MoveTo(cx-40, cy+ch/2)
	sim.Step(clock.Advance(frame))
	input.Press(utils.PointerPrimary)
	sim.Step(clock.Advance(frame))
	input.Release(utils.PointerPrimary)
	// 指针移出视口，不再影响字母
	input.MoveTo(-10000, -10000)

	var lastMoving time.Time
	for clock.Now().Sub(start) < duration {
		now := clock.Advance(frame)
		sim.Step(now)

		offset := maxOffset(sim)
		result.peakOffset = math.Max(result.peakOffset, offset)
		if offset > settleThreshold {
			lastMoving = now
		}
		if result.shockwaveEnd == 0 && sim.ShockwaveCount() == 0 {
			result.shockwaveEnd = now.Sub(start)
		}
	}

	switch {
	case lastMoving.IsZero():
		result.settled = true
	case clock.Now().Sub(lastMoving) > time.Second:
		result.settled = true
		result.settleTime = lastMoving.Sub(start)
	}
	return result, nil
}

// maxOffset 返回所有字母中离原位最远的距离
func maxOffset(sim *scenes.Simulation) float64 {
	peak := 0.0
	for _, id := range sim.Letters() {
		body, ok := ecs.GetComponent[*components.LetterBodyComponent](sim.EntityManager(), id)
		if !ok {
			continue
		}
		peak = math.Max(peak, math.Hypot(body.X-body.HomeX, body.Y-body.HomeY))
	}
	return peak
}
