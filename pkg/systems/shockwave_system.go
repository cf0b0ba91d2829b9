package systems

import (
	"log"
	"math"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
)

// ShockwaveSystem 推进冲击波并对字母施加冲量
//
// 每个冲击波的波前半径 = 年龄 × 扩张速度。
// 年龄超过存活时长的冲击波在本帧被标记删除且不再施力，
// 实际删除由帧驱动在帧末统一执行。
type ShockwaveSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig
}

// NewShockwaveSystem 创建冲击波系统
func NewShockwaveSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig) *ShockwaveSystem {
	return &ShockwaveSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 推进所有冲击波
//
// 参数:
//   - frame: 帧上下文（当前时刻、dt、容器偏移）
func (s *ShockwaveSystem) Update(frame *components.FrameContext) {
	waves := ecs.GetEntitiesWith1[*components.ShockwaveComponent](s.entityManager)
	if len(waves) == 0 {
		return
	}

	letters := ecs.GetEntitiesWith1[*components.LetterBodyComponent](s.entityManager)
	cfg := s.config.Shockwave

	// 超过最大可能半径的字母不可能被任何冲击波击中
	maxReach := cfg.Duration*cfg.Speed + cfg.EffectRadius
	maxReachSq := maxReach * maxReach

	for _, waveID := range waves {
		wave, ok := ecs.GetComponent[*components.ShockwaveComponent](s.entityManager, waveID)
		if !ok || s.entityManager.IsMarkedForDestroy(waveID) {
			continue
		}

		wave.Age = frame.Now.Sub(wave.StartTime).Seconds()
		wave.Radius = wave.Age * cfg.Speed

		if wave.Age > cfg.Duration {
			s.entityManager.DestroyEntity(waveID)
			log.Printf("[Shockwave] Expired after %.2fs", wave.Age)
			continue
		}

		for _, letterID := range letters {
			body, ok := ecs.GetComponent[*components.LetterBodyComponent](s.entityManager, letterID)
			if !ok {
				continue
			}

			dx := body.X + frame.ContainerX - wave.OriginX
			dy := body.Y + frame.ContainerY - wave.OriginY
			distSq := dx*dx + dy*dy
			if distSq > maxReachSq {
				continue
			}

			dist := math.Sqrt(distSq)
			if math.Abs(dist-wave.Radius) >= cfg.EffectRadius || dist <= 1 {
				continue
			}

			force := math.Max(0, wave.Strength/(math.Pow(dist, cfg.Falloff)+1)) * frame.DeltaTime
			body.VX += dx / dist * force
			body.VY += dy / dist * force
			body.RecentlyImpulsed = true
		}
	}
}

// ActiveCount 返回尚未过期的冲击波数量（调试 HUD 用）
func (s *ShockwaveSystem) ActiveCount() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ShockwaveComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}

// Clear 标记删除所有冲击波
func (s *ShockwaveSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ShockwaveComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}
