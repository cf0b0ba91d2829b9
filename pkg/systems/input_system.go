package systems

import (
	"log"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/entities"
	"github.com/gonewx/springtype/pkg/utils"
)

// InputSystem 维护指针状态与蓄力手势
//
// 状态机只有两个状态：
//   - idle → charging: 主按钮按下，记录按下时刻和位置
//   - charging → idle: 主按钮释放，在按下位置生成冲击波
//
// 非主按钮以及没有对应按下的释放都被忽略。
type InputSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig
	source        utils.InputSource
	pointer       *components.PointerState

	// OnDebugToggle 调试开关键按下时回调（文本框持有焦点时不触发）
	OnDebugToggle func()

	events []utils.PointerEvent
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - em: 实体管理器，冲击波实体在这里创建
//   - cfg: 调参配置
//   - source: 输入来源
//   - pointer: 共享的指针状态，由帧驱动持有
//
// 返回:
//   - *InputSystem: 输入系统实例
func NewInputSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig, source utils.InputSource, pointer *components.PointerState) *InputSystem {
	return &InputSystem{
		entityManager: em,
		config:        cfg,
		source:        source,
		pointer:       pointer,
		events:        make([]utils.PointerEvent, 0, 4),
	}
}

// Update 读取本帧输入
//
// 指针位移（VX, VY）每帧只计算一次：当前位置减去上一帧位置。
// 按钮事件按发生顺序处理，释放时立即生成冲击波。
func (s *InputSystem) Update(now time.Time) {
	p := s.pointer
	p.X, p.Y = s.source.PointerPosition()
	p.VX = p.X - p.PrevX
	p.VY = p.Y - p.PrevY
	p.PrevX, p.PrevY = p.X, p.Y

	s.events = s.source.AppendPointerEvents(s.events[:0])
	for _, ev := range s.events {
		s.handlePointerEvent(ev, now)
	}
}

// PollDebugToggle 处理调试开关键
//
// 与指针输入分开，模拟暂停（尺寸变化防抖、没有字母）时也要响应。
func (s *InputSystem) PollDebugToggle() {
	if s.source.DebugTogglePressed() && !s.source.TextFocused() {
		if s.OnDebugToggle != nil {
			s.OnDebugToggle()
		}
	}
}

// UpdateCharge 计算本帧的蓄力比例
//
// 在冲击波推进之后、力累加之前调用，蓄力吸引力使用这个比例。
func (s *InputSystem) UpdateCharge(now time.Time) {
	p := s.pointer
	if !p.Pressed {
		p.ChargeRatio = 0
		return
	}
	p.ChargeRatio = s.config.ChargeRatio(now.Sub(p.PressStart).Seconds())
}

// CancelCharge 取消进行中的蓄力（窗口尺寸变化时调用）
func (s *InputSystem) CancelCharge() {
	s.pointer.Pressed = false
	s.pointer.ChargeRatio = 0
}

func (s *InputSystem) handlePointerEvent(ev utils.PointerEvent, now time.Time) {
	if ev.Button != utils.PointerPrimary {
		return
	}

	p := s.pointer
	if ev.Pressed {
		p.Pressed = true
		p.PressStart = now
		p.PressX, p.PressY = ev.X, ev.Y
		return
	}

	// 没有对应按下的释放（例如按下发生在窗口外）
	if !p.Pressed {
		return
	}

	hold := now.Sub(p.PressStart).Seconds()
	strength := s.config.ShockwaveStrength(hold)
	entities.NewShockwaveEntity(s.entityManager, p.PressX, p.PressY, strength, now)
	log.Printf("[InputSystem] Charge released after %.2fs", hold)

	p.Pressed = false
	p.ChargeRatio = 0
}
