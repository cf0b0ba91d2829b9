package scenes

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/entities"
	"github.com/gonewx/springtype/pkg/systems"
	"github.com/gonewx/springtype/pkg/utils"
)

// Simulation 帧驱动：持有全部模拟状态，按固定顺序推进各系统
//
// 每帧顺序：
//  1. 指针位移与按钮事件
//  2. 冲击波推进与冲量
//  3. 蓄力比例
//  4. 逐字母力累加与积分
//  5. 间距力与碰撞解算
//  6. 外观映射
//  7. 执行延迟删除
//
// Step 只在 Initialize 成功后推进；Stop 之后需要重新 Initialize。
type Simulation struct {
	config *config.PhysicsConfig

	entityManager *ecs.EntityManager
	pointer       components.PointerState
	frame         components.FrameContext

	input      *systems.InputSystem
	shockwaves *systems.ShockwaveSystem
	forces     *systems.ForceSystem
	collisions *systems.CollisionSystem
	appearance *systems.AppearanceSystem

	source utils.InputSource
	rng    *rand.Rand

	layout    *entities.TitleLayout
	letters   []ecs.EntityID
	running   bool
	startTime time.Time
	lastFrame time.Time
}

// NewSimulation 创建帧驱动
//
// 参数:
//   - cfg: 调参配置
//   - source: 输入来源
//   - seed: 振荡相位的随机种子
func NewSimulation(cfg *config.PhysicsConfig, source utils.InputSource, seed int64) *Simulation {
	em := ecs.NewEntityManager()
	s := &Simulation{
		config:        cfg,
		entityManager: em,
		source:        source,
		rng:           rand.New(rand.NewSource(seed)),
	}
	s.frame.Pointer = &s.pointer

	s.input = systems.NewInputSystem(em, cfg, source, &s.pointer)
	s.shockwaves = systems.NewShockwaveSystem(em, cfg)
	s.forces = systems.NewForceSystem(em, cfg)
	s.collisions = systems.NewCollisionSystem(em, cfg)
	s.appearance = systems.NewAppearanceSystem(em, cfg)
	return s
}

// Initialize 整体重建：清空实体、重置指针与蓄力、重新排版标题
//
// 参数:
//   - title: 标题文本
//   - measurer: 字形测量器
//   - faces: 字母字体面工厂（可为 nil）
//   - viewportW, viewportH: 视口尺寸
//   - now: 当前时刻，作为第一帧的上一帧时刻
//
// 返回:
//   - error: entities.ErrNoContainer / entities.ErrNoLetters 或其他排版错误；
//     出错时模拟保持停止
func (s *Simulation) Initialize(title string, measurer entities.GlyphMeasurer, faces entities.FaceFactory, viewportW, viewportH float64, now time.Time) error {
	s.running = false
	s.entityManager.Clear()
	s.letters = nil
	s.layout = nil

	s.pointer.Reset(viewportW/2, viewportH/2)
	// 以真实指针位置作为上一帧位置，避免第一帧出现虚假的指针速度
	if s.source != nil {
		s.pointer.PrevX, s.pointer.PrevY = s.source.PointerPosition()
	}
	s.input.CancelCharge()

	layout, err := entities.LayoutTitle(title, measurer, viewportW, viewportH, s.config.Layout)
	if err != nil {
		if errors.Is(err, entities.ErrNoLetters) {
			log.Printf("[Simulation] No letters initialized")
		}
		return fmt.Errorf("failed to lay out title: %w", err)
	}

	s.layout = layout
	s.letters = entities.PopulateLetters(s.entityManager, layout, faces, s.config.FontAxes, s.rng)
	s.frame.ContainerX, s.frame.ContainerY = layout.ContainerX, layout.ContainerY
	s.startTime = now
	s.lastFrame = now
	s.running = true
	log.Printf("[Simulation] Starting animation with %d letters", len(s.letters))
	return nil
}

// Step 推进一帧
//
// dt = clamp(now - 上一帧, 0, MaxDeltaTime)，长时间停顿后恢复不会产生巨大的一步。
// 调试开关键在停止状态下也会处理。
//
// 返回:
//   - bool: 本帧是否实际推进（未初始化或已停止时为 false）
func (s *Simulation) Step(now time.Time) bool {
	s.input.PollDebugToggle()
	if !s.running {
		return false
	}

	dt := utils.Clamp(now.Sub(s.lastFrame).Seconds(), 0, s.config.Physics.MaxDeltaTime)
	s.lastFrame = now

	s.frame.Now = now
	s.frame.DeltaTime = dt
	s.frame.Elapsed = now.Sub(s.startTime).Seconds()

	s.input.Update(now)
	s.shockwaves.Update(&s.frame)
	s.input.UpdateCharge(now)
	s.forces.Update(&s.frame)
	s.collisions.Update(&s.frame)
	s.appearance.Update(&s.frame)
	s.entityManager.RemoveMarkedEntities()
	return true
}

// Stop 暂停推进（窗口尺寸变化期间），同时取消蓄力并清空冲击波
func (s *Simulation) Stop() {
	if s.running {
		log.Printf("[Simulation] Paused for resize")
	}
	s.running = false
	s.input.CancelCharge()
	s.shockwaves.Clear()
	s.entityManager.RemoveMarkedEntities()
}

// SetDebugToggleHandler 设置调试开关回调
func (s *Simulation) SetDebugToggleHandler(fn func()) {
	s.input.OnDebugToggle = fn
}

// Running 模拟是否在推进
func (s *Simulation) Running() bool {
	return s.running
}

// EntityManager 返回模拟持有的实体管理器（渲染系统共享）
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Pointer 返回指针状态
func (s *Simulation) Pointer() *components.PointerState {
	return &s.pointer
}

// Letters 返回按排版顺序排列的字母实体
func (s *Simulation) Letters() []ecs.EntityID {
	return s.letters
}

// ShockwaveCount 返回活动冲击波数量
func (s *Simulation) ShockwaveCount() int {
	return s.shockwaves.ActiveCount()
}

// Container 返回容器矩形（视口坐标），未初始化时全为 0
func (s *Simulation) Container() (x, y, w, h float64) {
	if s.layout == nil {
		return 0, 0, 0, 0
	}
	return s.layout.ContainerX, s.layout.ContainerY, s.layout.ContainerW, s.layout.ContainerH
}

// LastDeltaTime 返回最近一帧的 dt
func (s *Simulation) LastDeltaTime() float64 {
	return s.frame.DeltaTime
}
