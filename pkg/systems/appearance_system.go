package systems

import (
	"math"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/utils"
)

// AppearanceSystem 将速度映射为字体轴、缩放和旋转
//
// 流程：
//  1. 由速度计算目标值（挤压拉伸、字重、字宽、倾斜、旋转）
//  2. 当前值按帧率无关的指数滑动平均追赶目标值（不限制范围）
//  3. 叠加正弦振荡后限制到合法范围，写入 LetterStyle
type AppearanceSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PhysicsConfig
}

// NewAppearanceSystem 创建外观映射系统
func NewAppearanceSystem(em *ecs.EntityManager, cfg *config.PhysicsConfig) *AppearanceSystem {
	return &AppearanceSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 为所有字母计算本帧样式
func (s *AppearanceSystem) Update(frame *components.FrameContext) {
	ids := ecs.GetEntitiesWith2[*components.LetterBodyComponent, *components.LetterAppearanceComponent](s.entityManager)
	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.LetterBodyComponent](s.entityManager, id)
		app, _ := ecs.GetComponent[*components.LetterAppearanceComponent](s.entityManager, id)
		if body == nil || app == nil {
			continue
		}

		// 碰撞解算会改变速度，这里重新取一次
		speed := body.RefreshSpeed()

		s.updateTargets(body, app, speed)
		s.smooth(app, frame.DeltaTime)
		app.Style = s.style(body, app, speed, frame.Elapsed)
	}
}

// updateTargets 计算物理目标值
func (s *AppearanceSystem) updateTargets(body *components.LetterBodyComponent, app *components.LetterAppearanceComponent, speed float64) {
	a := s.config.Appearance
	axes := s.config.FontAxes

	app.TargetScaleX, app.TargetScaleY = SquashStretch(body.VX, body.VY, a.SquashStretchFactor, a.ScaleSpeedThreshold)
	app.TargetScaleX = utils.Clamp(app.TargetScaleX, a.MinScale, a.MaxScale)
	app.TargetScaleY = utils.Clamp(app.TargetScaleY, a.MinScale, a.MaxScale)

	app.TargetAxes = components.FontAxes{
		Weight: axes.BaseWeight + speed*a.WeightSpeedFactor,
		Width:  axes.BaseWidth + speed*a.WidthSpeedFactor,
		Slant:  axes.BaseSlant + body.VX*a.SlantVelocityFactor,
	}

	app.TargetRotation = body.VX * a.RotationFactor
}

// smooth 当前值追赶目标值
func (s *AppearanceSystem) smooth(app *components.LetterAppearanceComponent, dt float64) {
	a := s.config.Appearance
	fps := s.config.Physics.NominalFPS

	app.ScaleX = utils.Smooth(app.ScaleX, app.TargetScaleX, a.ScaleSmoothing, dt, fps)
	app.ScaleY = utils.Smooth(app.ScaleY, app.TargetScaleY, a.ScaleSmoothing, dt, fps)

	app.Axes.Weight = utils.Smooth(app.Axes.Weight, app.TargetAxes.Weight, a.FontSmoothing, dt, fps)
	app.Axes.Width = utils.Smooth(app.Axes.Width, app.TargetAxes.Width, a.FontSmoothing, dt, fps)
	app.Axes.Slant = utils.Smooth(app.Axes.Slant, app.TargetAxes.Slant, a.FontSmoothing, dt, fps)

	app.Rotation = utils.Smooth(app.Rotation, app.TargetRotation, a.RotationSmoothing, dt, fps)
	if math.Abs(app.Rotation) < a.RotationSnapEpsilon && math.Abs(app.TargetRotation) < a.RotationSnapEpsilon {
		app.Rotation = 0
	}
}

// style 叠加振荡并限制范围，生成本帧输出
func (s *AppearanceSystem) style(body *components.LetterBodyComponent, app *components.LetterAppearanceComponent, speed, elapsed float64) components.LetterStyle {
	a := s.config.Appearance
	osc := s.config.Oscillation
	axes := s.config.FontAxes

	fontT := elapsed * osc.FontSpeed
	scaleT := fontT * osc.ScaleSpeedRatio

	weight := app.Axes.Weight + oscillate(app.PhaseWeight, fontT, osc.WeightRange)
	width := app.Axes.Width + oscillate(app.PhaseWidth, fontT, osc.WidthRange)
	slant := app.Axes.Slant + oscillate(app.PhaseSlant, fontT, osc.SlantRange)
	scaleX := app.ScaleX + oscillate(app.PhaseScaleX, scaleT, osc.ScaleRange)
	scaleY := app.ScaleY + oscillate(app.PhaseScaleY, scaleT, osc.ScaleRange)

	dx, dy := body.Offset()
	return components.LetterStyle{
		TranslateX: dx,
		TranslateY: dy,
		Rotation:   app.Rotation,
		ScaleX:     utils.Clamp(scaleX, a.MinScale, a.MaxScale),
		ScaleY:     utils.Clamp(scaleY, a.MinScale, a.MaxScale),
		Axes: components.FontAxes{
			Weight: utils.Clamp(weight, axes.MinWeight, axes.MaxWeight),
			Width:  utils.Clamp(width, axes.MinWidth, axes.MaxWidth),
			Slant:  utils.Clamp(slant, axes.MinSlant, axes.MaxSlant),
		},
		SpeedRatio: SpeedRatio(speed, s.config.Debug.MaxSpeedColor),
	}
}

// SquashStretch 根据速度方向计算挤压拉伸目标缩放
//
// 水平运动时字形变窄变高，竖直运动时变宽变矮；速度不超过阈值时返回 (1, 1)。
//
// 参数:
//   - vx, vy: 速度
//   - factor: 挤压拉伸系数
//   - threshold: 生效的最小速度
//
// 返回:
//   - sx, sy: 目标缩放（未限制范围）
func SquashStretch(vx, vy, factor, threshold float64) (sx, sy float64) {
	speed := math.Hypot(vx, vy)
	if speed <= threshold {
		return 1, 1
	}
	k := math.Max(0, speed*factor*0.05) // 形变量，即缩放系数减 1
	angle := math.Atan2(vy, vx)
	cos := math.Abs(math.Cos(angle))
	sin := math.Abs(math.Sin(angle))
	sx = 1 + k*sin - k*cos*0.5
	sy = 1 + k*cos - k*sin*0.5
	return sx, sy
}

// SpeedRatio 归一化速度到 [0, 1]
func SpeedRatio(speed, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return 0
	}
	return math.Min(1, speed/maxSpeed)
}

// oscillate 返回 sin(phase + t) × range / 2，range 为 0 时关闭
func oscillate(phase, t, rng float64) float64 {
	if rng <= 0 {
		return 0
	}
	return math.Sin(phase+t) * rng / 2
}
