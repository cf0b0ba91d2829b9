package entities

import (
	"log"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/ecs"
)

// NewShockwaveEntity 创建冲击波实体
//
// 参数:
//   - em: 实体管理器
//   - x, y: 原点（视口坐标，取按下位置）
//   - strength: 强度
//   - now: 创建时刻，波前半径从这里开始扩张
//
// 返回:
//   - ecs.EntityID: 新实体 ID
func NewShockwaveEntity(em *ecs.EntityManager, x, y, strength float64, now time.Time) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.ShockwaveComponent{
		OriginX:   x,
		OriginY:   y,
		StartTime: now,
		Strength:  strength,
	})
	log.Printf("[Shockwave] Created at (%.0f, %.0f) strength=%.1f", x, y, strength)
	return id
}
