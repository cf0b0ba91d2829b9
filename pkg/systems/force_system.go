package systems

import (
	"math"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/utils"
)

// ForceSystem 逐字母累加指针力、回家弹簧和阻尼，然后积分位置
//
// 所有增量都乘以 dt × 名义帧率，阻尼写成 drag^(dt × 名义帧率)，
// 因此同样的墙钟时间在任意帧率下得到相同的轨迹。
type ForceSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig
}

// NewForceSystem 创建力累加系统
func NewForceSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig) *ForceSystem {
	return &ForceSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 对所有字母执行一次力累加与积分
func (s *ForceSystem) Update(frame *components.FrameContext) {
	for _, id := range ecs.GetEntitiesWith1[*components.LetterBodyComponent](s.entityManager) {
		body, ok := ecs.GetComponent[*components.LetterBodyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		s.integrate(body, frame)
	}
}

func (s *ForceSystem) integrate(body *components.LetterBodyComponent, frame *components.FrameContext) {
	p := s.config.Physics
	dt := frame.DeltaTime
	step := s.config.NominalStep(dt)

	s.applyPointerForce(body, frame)

	// 回家弹簧：被冲击波击中后暂停，让字母先飞出去
	if !body.RecentlyImpulsed {
		accel := p.ReturnForce * step
		body.VX += (body.HomeX - body.X) * accel
		body.VY += (body.HomeY - body.Y) * accel
	}

	drag := utils.FrameDecay(p.DragFactor, dt, p.NominalFPS)
	body.VX *= drag
	body.VY *= drag

	body.X += body.VX * step
	body.Y += body.VY * step

	speed := body.RefreshSpeed()
	if speed > p.MaxSpeed {
		body.VX = body.VX / speed * p.MaxSpeed
		body.VY = body.VY / speed * p.MaxSpeed
		body.Speed = p.MaxSpeed
	}

	if body.RecentlyImpulsed && body.Speed < p.ImpulseSettleSpeed {
		body.RecentlyImpulsed = false
	}
}

// applyPointerForce 指针空闲时推开附近字母，蓄力时把所有字母吸向指针
func (s *ForceSystem) applyPointerForce(body *components.LetterBodyComponent, frame *components.FrameContext) {
	pointer := frame.Pointer
	if pointer == nil {
		return
	}

	p := s.config.Physics
	dt := frame.DeltaTime
	mx, my := frame.PointerLocal()
	dx := mx - body.X
	dy := my - body.Y
	distSq := dx*dx + dy*dy

	if pointer.Pressed {
		if distSq <= 1 {
			return
		}
		dist := math.Sqrt(distSq)
		magnitude := p.AttractionStrength * pointer.ChargeRatio * dt
		body.VX += dx / dist * magnitude
		body.VY += dy / dist * magnitude
		return
	}

	if distSq >= p.MouseRadius*p.MouseRadius || distSq <= 0.01 {
		return
	}

	dist := math.Sqrt(distSq)
	proximity := 1 - dist/p.MouseRadius

	step := s.config.NominalStep(dt)
	impulse := p.MouseForce * proximity * step
	body.VX += pointer.VX * impulse
	body.VY += pointer.VY * impulse

	push := p.MousePush * proximity * step
	body.VX -= dx / dist * push
	body.VY -= dy / dist * push
}
