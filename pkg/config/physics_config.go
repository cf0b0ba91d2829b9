package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PhysicsConfig 标题字母动画的全部调参
//
// 配置文件位置: data/physics.yaml（嵌入二进制，可通过 --config 覆盖）
//
// 未在 YAML 中出现的字段保留 DefaultPhysicsConfig() 中的默认值，
// 因此覆盖文件只需写出需要修改的部分。
type PhysicsConfig struct {
	// Physics 力与碰撞参数
	Physics ForceConfig `yaml:"physics"`

	// Shockwave 冲击波参数
	Shockwave ShockwaveConfig `yaml:"shockwave"`

	// Appearance 外观映射参数（挤压拉伸、字体轴、旋转）
	Appearance AppearanceConfig `yaml:"appearance"`

	// Oscillation 随机振荡参数
	Oscillation OscillationConfig `yaml:"oscillation"`

	// FontAxes 可变字体轴的基准值与合法范围
	FontAxes FontAxesConfig `yaml:"fontAxes"`

	// Layout 标题排版参数
	Layout LayoutConfig `yaml:"layout"`

	// Fonts 字体加载参数
	Fonts FontLoadConfig `yaml:"fonts"`

	// Debug 调试覆盖层参数
	Debug DebugConfig `yaml:"debug"`
}

// ForceConfig 力累加器与碰撞解算器参数
//
// 所有速度以"像素/名义帧"为单位，每帧的增量都乘以 dt × NominalFPS，
// 保证 30/60/144Hz 下视觉一致。
type ForceConfig struct {
	NominalFPS          float64 `yaml:"nominalFps"`          // 名义帧率
	MaxDeltaTime        float64 `yaml:"maxDeltaTime"`        // 单帧最大时间步长（秒）
	ReturnForce         float64 `yaml:"returnForce"`         // 回家弹簧系数
	DragFactor          float64 `yaml:"dragFactor"`          // 每名义帧保留的速度比例
	Bounciness          float64 `yaml:"bounciness"`          // 碰撞恢复系数
	MouseForce          float64 `yaml:"mouseForce"`          // 指针速度冲量倍数
	MousePush           float64 `yaml:"mousePush"`           // 指针外推力
	MouseRadius         float64 `yaml:"mouseRadius"`         // 指针影响半径（像素）
	AttractionStrength  float64 `yaml:"attractionStrength"`  // 蓄力时的吸引强度
	MaxSpeed            float64 `yaml:"maxSpeed"`            // 最大速度
	MinLetterSpacing    float64 `yaml:"minLetterSpacing"`    // 字母边缘最小间距（像素）
	SpacingStrength     float64 `yaml:"spacingStrength"`     // 间距力强度
	CollisionIterations int     `yaml:"collisionIterations"` // 碰撞解算迭代次数
	SeparationFactor    float64 `yaml:"separationFactor"`    // 每次迭代每个字母移动的穿透比例
	ImpulseSettleSpeed  float64 `yaml:"impulseSettleSpeed"`  // 低于此速度时解除冲击状态
}

// ShockwaveConfig 冲击波参数
type ShockwaveConfig struct {
	MinStrength       float64 `yaml:"minStrength"`       // 短按时的强度
	MaxStrength       float64 `yaml:"maxStrength"`       // 满蓄力时的强度
	ChargeDurationCap float64 `yaml:"chargeDurationCap"` // 满蓄力所需按住时长（秒）
	Speed             float64 `yaml:"speed"`             // 波前扩张速度（像素/秒）
	Duration          float64 `yaml:"duration"`          // 冲击波存活时长（秒）
	Falloff           float64 `yaml:"falloff"`           // 距离衰减指数
	EffectRadius      float64 `yaml:"effectRadius"`      // 波前厚度（像素）
}

// AppearanceConfig 外观映射参数
//
// 平滑系数 s 的含义：每名义帧保留 s 的旧值，
// 实际混合系数为 1 - s^(dt × NominalFPS)。
type AppearanceConfig struct {
	WeightSpeedFactor   float64 `yaml:"weightSpeedFactor"`
	WidthSpeedFactor    float64 `yaml:"widthSpeedFactor"`
	SlantVelocityFactor float64 `yaml:"slantVelocityFactor"`
	FontSmoothing       float64 `yaml:"fontSmoothing"`
	SquashStretchFactor float64 `yaml:"squashStretchFactor"`
	ScaleSpeedThreshold float64 `yaml:"scaleSpeedThreshold"`
	ScaleSmoothing      float64 `yaml:"scaleSmoothing"`
	MinScale            float64 `yaml:"minScale"`
	MaxScale            float64 `yaml:"maxScale"`
	RotationFactor      float64 `yaml:"rotationFactor"`
	RotationSmoothing   float64 `yaml:"rotationSmoothing"`
	RotationSnapEpsilon float64 `yaml:"rotationSnapEpsilon"`
}

// OscillationConfig 叠加在字体轴和缩放上的正弦振荡
type OscillationConfig struct {
	WeightRange     float64 `yaml:"weightRange"`     // 字重振荡峰峰值
	WidthRange      float64 `yaml:"widthRange"`      // 字宽振荡峰峰值
	SlantRange      float64 `yaml:"slantRange"`      // 倾斜振荡峰峰值，0 表示关闭
	FontSpeed       float64 `yaml:"fontSpeed"`       // 字体振荡角速度（弧度/秒）
	ScaleRange      float64 `yaml:"scaleRange"`      // 缩放振荡峰峰值
	ScaleSpeedRatio float64 `yaml:"scaleSpeedRatio"` // 缩放振荡相对字体振荡的速度倍数
}

// FontAxesConfig 可变字体轴配置（wght / wdth / slnt）
type FontAxesConfig struct {
	BaseWeight float64 `yaml:"baseWeight"`
	BaseWidth  float64 `yaml:"baseWidth"`
	BaseSlant  float64 `yaml:"baseSlant"`
	MinWeight  float64 `yaml:"minWeight"`
	MaxWeight  float64 `yaml:"maxWeight"`
	MinWidth   float64 `yaml:"minWidth"`
	MaxWidth   float64 `yaml:"maxWidth"`
	MinSlant   float64 `yaml:"minSlant"`
	MaxSlant   float64 `yaml:"maxSlant"`
}

// LayoutConfig 标题排版参数
type LayoutConfig struct {
	FontSize       float64       `yaml:"fontSize"`       // 字号（像素）
	LetterGap      float64       `yaml:"letterGap"`      // 相邻字形之间的额外间距
	SpacerWidth    float64       `yaml:"spacerWidth"`    // 空白字符占用的宽度
	Padding        float64       `yaml:"padding"`        // 容器内边距
	ResizeDebounce time.Duration `yaml:"resizeDebounce"` // 窗口尺寸变化的防抖延迟
}

// FontLoadConfig 字体加载参数
type FontLoadConfig struct {
	LoadTimeout   time.Duration `yaml:"loadTimeout"`   // 异步加载超时
	FallbackDelay time.Duration `yaml:"fallbackDelay"` // 加载失败后启用后备字体前的等待
}

// DebugConfig 调试覆盖层参数
type DebugConfig struct {
	MaxSpeedColor      float64  `yaml:"maxSpeedColor"`      // 达到此速度时色相变为红色
	ShockwaveColor     [4]uint8 `yaml:"shockwaveColor"`     // 冲击波圆环颜色，未预乘 RGBA
	ShockwaveLineWidth float64  `yaml:"shockwaveLineWidth"` // 冲击波圆环线宽
}

// DefaultPhysicsConfig 返回默认调参
//
// 与 data/physics.yaml 保持一致；嵌入文件缺失或损坏时作为兜底。
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Physics: ForceConfig{
			NominalFPS:          60,
			MaxDeltaTime:        0.1,
			ReturnForce:         0.035,
			DragFactor:          0.12,
			Bounciness:          0.8,
			MouseForce:          3.5,
			MousePush:           0.05,
			MouseRadius:         125,
			AttractionStrength:  2000,
			MaxSpeed:            350,
			MinLetterSpacing:    15,
			SpacingStrength:     0.02,
			CollisionIterations: 8,
			SeparationFactor:    0.5,
			ImpulseSettleSpeed:  0.5,
		},
		Shockwave: ShockwaveConfig{
			MinStrength:       100,
			MaxStrength:       4000000,
			ChargeDurationCap: 32,
			Speed:             500,
			Duration:          32,
			Falloff:           0.95,
			EffectRadius:      100,
		},
		Appearance: AppearanceConfig{
			WeightSpeedFactor:   15,
			WidthSpeedFactor:    50,
			SlantVelocityFactor: 1.5,
			FontSmoothing:       0.98,
			SquashStretchFactor: 15,
			ScaleSpeedThreshold: 0.1,
			ScaleSmoothing:      0.98,
			MinScale:            0.7,
			MaxScale:            1.4,
			RotationFactor:      33,
			RotationSmoothing:   0.98,
			RotationSnapEpsilon: 0.01,
		},
		Oscillation: OscillationConfig{
			WeightRange:     100,
			WidthRange:      75,
			SlantRange:      0,
			FontSpeed:       0.3,
			ScaleRange:      0.4,
			ScaleSpeedRatio: 1.61803398875,
		},
		FontAxes: FontAxesConfig{
			BaseWeight: 300,
			BaseWidth:  125,
			BaseSlant:  0,
			MinWeight:  100,
			MaxWeight:  1000,
			MinWidth:   25,
			MaxWidth:   151,
			MinSlant:   -10,
			MaxSlant:   0,
		},
		Layout: LayoutConfig{
			FontSize:       96,
			LetterGap:      4,
			SpacerWidth:    40,
			Padding:        24,
			ResizeDebounce: 250 * time.Millisecond,
		},
		Fonts: FontLoadConfig{
			LoadTimeout:   3 * time.Second,
			FallbackDelay: 500 * time.Millisecond,
		},
		Debug: DebugConfig{
			MaxSpeedColor:      10.5,
			ShockwaveColor:     [4]uint8{0, 150, 255, 204},
			ShockwaveLineWidth: 3,
		},
	}
}

// LoadPhysicsConfig 从磁盘加载调参文件
//
// 参数:
//   - path: 配置文件路径（如 "data/physics.yaml"）
//
// 返回:
//   - *PhysicsConfig: 以默认值为底、叠加文件内容后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadPhysicsConfig(path string) (*PhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics config: %w", err)
	}
	return ParsePhysicsConfig(data)
}

// ParsePhysicsConfig 解析 YAML 格式的调参数据
//
// 解析从 DefaultPhysicsConfig() 开始，YAML 中出现的字段覆盖默认值。
func ParsePhysicsConfig(data []byte) (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查:
//   - 各字体轴与缩放的 min <= max，基准值落在范围内
//   - 阻尼和平滑系数在 (0, 1] 内
//   - 时长、速度、半径为正
func (c *PhysicsConfig) Validate() error {
	p := c.Physics
	if p.NominalFPS <= 0 {
		return fmt.Errorf("nominalFps must be > 0, got %.2f", p.NominalFPS)
	}
	if p.MaxDeltaTime <= 0 {
		return fmt.Errorf("maxDeltaTime must be > 0, got %.3f", p.MaxDeltaTime)
	}
	if err := checkUnitFactor("dragFactor", p.DragFactor); err != nil {
		return err
	}
	if p.MouseRadius <= 0 {
		return fmt.Errorf("mouseRadius must be > 0, got %.1f", p.MouseRadius)
	}
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("maxSpeed must be > 0, got %.1f", p.MaxSpeed)
	}
	if p.CollisionIterations < 1 {
		return fmt.Errorf("collisionIterations must be >= 1, got %d", p.CollisionIterations)
	}
	if p.SeparationFactor <= 0 || p.SeparationFactor > 1 {
		return fmt.Errorf("separationFactor must be in (0, 1], got %.3f", p.SeparationFactor)
	}
	if p.Bounciness < 0 {
		return fmt.Errorf("bounciness must be >= 0, got %.2f", p.Bounciness)
	}

	s := c.Shockwave
	if s.MinStrength > s.MaxStrength {
		return fmt.Errorf("shockwave strength range invalid: min(%.1f) > max(%.1f)", s.MinStrength, s.MaxStrength)
	}
	if s.ChargeDurationCap <= 0 {
		return fmt.Errorf("shockwave chargeDurationCap must be > 0, got %.2f", s.ChargeDurationCap)
	}
	if s.Speed <= 0 || s.Duration <= 0 || s.EffectRadius <= 0 {
		return fmt.Errorf("shockwave speed/duration/effectRadius must be > 0")
	}

	a := c.Appearance
	for name, v := range map[string]float64{
		"fontSmoothing":     a.FontSmoothing,
		"scaleSmoothing":    a.ScaleSmoothing,
		"rotationSmoothing": a.RotationSmoothing,
	} {
		if err := checkUnitFactor(name, v); err != nil {
			return err
		}
	}
	if a.MinScale <= 0 || a.MinScale > a.MaxScale {
		return fmt.Errorf("scale range invalid: min(%.2f) max(%.2f)", a.MinScale, a.MaxScale)
	}

	f := c.FontAxes
	if err := checkAxis("weight", f.MinWeight, f.MaxWeight, f.BaseWeight); err != nil {
		return err
	}
	if err := checkAxis("width", f.MinWidth, f.MaxWidth, f.BaseWidth); err != nil {
		return err
	}
	if err := checkAxis("slant", f.MinSlant, f.MaxSlant, f.BaseSlant); err != nil {
		return err
	}

	if c.Layout.FontSize <= 0 {
		return fmt.Errorf("layout fontSize must be > 0, got %.1f", c.Layout.FontSize)
	}
	if c.Layout.ResizeDebounce < 0 {
		return fmt.Errorf("layout resizeDebounce must be >= 0, got %s", c.Layout.ResizeDebounce)
	}
	if c.Fonts.LoadTimeout <= 0 {
		return fmt.Errorf("fonts loadTimeout must be > 0, got %s", c.Fonts.LoadTimeout)
	}

	return nil
}

// NominalStep 返回 dt 对应的名义帧数（dt × NominalFPS）
func (c *PhysicsConfig) NominalStep(dt float64) float64 {
	return dt * c.Physics.NominalFPS
}

// ChargeRatio 将按住时长映射为 [0, 1] 的蓄力比例
func (c *PhysicsConfig) ChargeRatio(holdSeconds float64) float64 {
	if holdSeconds <= 0 {
		return 0
	}
	ratio := holdSeconds / c.Shockwave.ChargeDurationCap
	if ratio > 1 {
		return 1
	}
	return ratio
}

// ShockwaveStrength 根据按住时长计算冲击波强度
//
// 强度 = min + (max - min) × min(hold / cap, 1)
func (c *PhysicsConfig) ShockwaveStrength(holdSeconds float64) float64 {
	s := c.Shockwave
	return s.MinStrength + (s.MaxStrength-s.MinStrength)*c.ChargeRatio(holdSeconds)
}

// ShockwaveRingColor 返回调试圆环颜色
//
// 配置中的四个分量是未预乘的 RGBA（与 CSS rgba 相同），因此返回 color.NRGBA。
func (c *PhysicsConfig) ShockwaveRingColor() color.NRGBA {
	rgba := c.Debug.ShockwaveColor
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}

// checkUnitFactor 检查系数是否在 (0, 1] 内
func checkUnitFactor(name string, v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %.3f", name, v)
	}
	return nil
}

// checkAxis 检查字体轴范围以及基准值
func checkAxis(name string, minV, maxV, base float64) error {
	if minV > maxV {
		return fmt.Errorf("%s axis range invalid: min(%.1f) > max(%.1f)", name, minV, maxV)
	}
	if base < minV || base > maxV {
		return fmt.Errorf("%s base %.1f outside [%.1f, %.1f]", name, base, minV, maxV)
	}
	return nil
}
