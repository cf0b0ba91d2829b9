package systems

import (
	"math"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
)

// spacingMinDistSq 低于此距离平方时方向不可靠，跳过间距力
const spacingMinDistSq = 0.001

// CollisionSystem 字母之间的间距力与 AABB 碰撞解算
//
// 两遍都在力累加之后运行，成对遍历按实体 ID 升序，结果确定。
// 字母数量只有几十个，O(N²) 遍历足够。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig

	bodies []collisionBody
}

// collisionBody 一帧内缓存的字母引用与当前缩放
type collisionBody struct {
	body           *components.LetterBodyComponent
	scaleX, scaleY float64
}

// halfExtents 返回按当前缩放计算的半宽半高
func (c collisionBody) halfExtents() (hw, hh float64) {
	return c.body.Width * c.scaleX / 2, c.body.Height * c.scaleY / 2
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 依次执行间距力和碰撞解算
func (s *CollisionSystem) Update(frame *components.FrameContext) {
	s.collect()
	s.applySpacing(frame.DeltaTime)
	s.resolveCollisions()
}

// ApplySpacing 只执行间距力，dt 为本帧秒数
func (s *CollisionSystem) ApplySpacing(dt float64) {
	s.collect()
	s.applySpacing(dt)
}

// ResolveCollisions 只执行碰撞解算
func (s *CollisionSystem) ResolveCollisions() {
	s.collect()
	s.resolveCollisions()
}

func (s *CollisionSystem) collect() {
	s.bodies = s.bodies[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.LetterBodyComponent](s.entityManager) {
		body, ok := ecs.GetComponent[*components.LetterBodyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		cb := collisionBody{body: body, scaleX: 1, scaleY: 1}
		if app, ok := ecs.GetComponent[*components.LetterAppearanceComponent](s.entityManager, id); ok {
			cb.scaleX, cb.scaleY = app.ScaleX, app.ScaleY
		}
		s.bodies = append(s.bodies, cb)
	}
}

// applySpacing 软间距力
//
// 目标中心距 = 两字母有效半宽之和 + 最小间距。
// 实际距离小于目标时，沿连线方向施加与穿透深度成正比的冲量，两边各一半。
// 冲量按名义帧数缩放，与回家弹簧一致，静止位置不随帧率变化。
func (s *CollisionSystem) applySpacing(dt float64) {
	p := s.config.Physics
	step := s.config.NominalStep(dt)
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := s.bodies[i], s.bodies[j]
			dx := b.body.X - a.body.X
			dy := b.body.Y - a.body.Y
			distSq := dx*dx + dy*dy

			hwA, _ := a.halfExtents()
			hwB, _ := b.halfExtents()
			target := hwA + hwB + p.MinLetterSpacing
			if distSq >= target*target || distSq <= spacingMinDistSq {
				continue
			}

			dist := math.Sqrt(distSq)
			magnitude := (target - dist) * p.SpacingStrength * step
			nx, ny := dx/dist, dy/dist

			a.body.VX -= nx * magnitude * 0.5
			a.body.VY -= ny * magnitude * 0.5
			b.body.VX += nx * magnitude * 0.5
			b.body.VY += ny * magnitude * 0.5
		}
	}
}

// resolveCollisions 迭代式 AABB 重叠修正
//
// 每次迭代对每个重叠对沿重叠较小的轴分离，
// 若沿法线相互接近则按恢复系数交换冲量；已在分离的对不处理速度。
// 多次迭代后仍可能残留少量重叠。
func (s *CollisionSystem) resolveCollisions() {
	p := s.config.Physics
	for iter := 0; iter < p.CollisionIterations; iter++ {
		for i := 0; i < len(s.bodies); i++ {
			for j := i + 1; j < len(s.bodies); j++ {
				s.resolvePair(s.bodies[i], s.bodies[j], p)
			}
		}
	}
}

func (s *CollisionSystem) resolvePair(a, b collisionBody, p config.ForceConfig) {
	hwA, hhA := a.halfExtents()
	hwB, hhB := b.halfExtents()

	dx := b.body.X - a.body.X
	dy := b.body.Y - a.body.Y
	overlapX := hwA + hwB - math.Abs(dx)
	overlapY := hhA + hhB - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return
	}

	var nx, ny float64
	if overlapX < overlapY {
		nx = sign(dx)
		move := overlapX * p.SeparationFactor
		a.body.X -= nx * move
		b.body.X += nx * move
	} else {
		ny = sign(dy)
		move := overlapY * p.SeparationFactor
		a.body.Y -= ny * move
		b.body.Y += ny * move
	}

	velAlongNormal := (b.body.VX-a.body.VX)*nx + (b.body.VY-a.body.VY)*ny
	if velAlongNormal > 0 {
		return
	}

	impulse := -(1 + p.Bounciness) * velAlongNormal / 2
	a.body.VX -= impulse * nx
	a.body.VY -= impulse * ny
	b.body.VX += impulse * nx
	b.body.VY += impulse * ny
}

// sign 返回 v 的方向，0 视为正方向，保证完全重合的字母也能被分开
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
