package entities

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"unicode"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// goldenRatio 纵向缩放振荡相位的额外倍数，让两轴振荡不同步
const goldenRatio = 1.61803398875

var (
	// ErrNoContainer 视口或容器尺寸为零，模拟不能启动
	ErrNoContainer = errors.New("title container has zero size")

	// ErrNoLetters 没有任何可用字形
	ErrNoLetters = errors.New("no letters to animate")
)

// GlyphMeasurer 测量单个字符在基准字体轴下的包围盒
type GlyphMeasurer interface {
	MeasureGlyph(r rune) (w, h float64)
}

// FaceFactory 为每个字母创建独立的字体面，可返回 nil（无头运行）
type FaceFactory func() *text.GoTextFace

// LetterSlot 一个字母的排版结果
type LetterSlot struct {
	Char  rune
	Index int

	// HomeX, HomeY 字形中心，相对容器左上角
	HomeX, HomeY float64

	Width, Height float64
}

// TitleLayout 标题排版结果
type TitleLayout struct {
	// ContainerX, ContainerY 容器左上角（视口坐标）
	ContainerX, ContainerY float64
	ContainerW, ContainerH float64

	Slots []LetterSlot

	// Skipped 因尺寸为零被跳过的字形数
	Skipped int
}

// LayoutTitle 计算标题中每个字母的静止位置
//
// 字形从左到右单行排列，相邻字形之间加 LetterGap；
// 空白字符只占 SpacerWidth，不产生粒子；首尾空白不计入内容宽度。
// 测得宽或高为零的字形被跳过并记录日志，其余字母照常排版。
//
// 参数:
//   - title: 标题文本
//   - m: 字形测量器
//   - viewportW, viewportH: 视口尺寸
//   - layout: 排版参数
//
// 返回:
//   - *TitleLayout: 排版结果（出错时可能为 nil）
//   - error: ErrNoContainer 或 ErrNoLetters
func LayoutTitle(title string, m GlyphMeasurer, viewportW, viewportH float64, layout config.LayoutConfig) (*TitleLayout, error) {
	if viewportW <= 0 || viewportH <= 0 {
		return nil, ErrNoContainer
	}
	if m == nil {
		return nil, fmt.Errorf("glyph measurer cannot be nil")
	}

	result := &TitleLayout{}
	cursor := 0.0
	rightEdge := 0.0
	contentH := 0.0
	index := -1

	for _, r := range title {
		index++
		if unicode.IsSpace(r) {
			if len(result.Slots) > 0 {
				cursor += layout.SpacerWidth
			}
			continue
		}

		w, h := m.MeasureGlyph(r)
		if w <= 0 || h <= 0 {
			log.Printf("[Registry] Letter %d (%q) has zero dimensions, skipping", index, r)
			result.Skipped++
			continue
		}

		result.Slots = append(result.Slots, LetterSlot{
			Char:   r,
			Index:  index,
			HomeX:  layout.Padding + cursor + w/2,
			HomeY:  layout.Padding + h/2,
			Width:  w,
			Height: h,
		})
		rightEdge = cursor + w
		cursor = rightEdge + layout.LetterGap
		contentH = math.Max(contentH, h)
	}

	if len(result.Slots) == 0 {
		return result, ErrNoLetters
	}

	// 内容宽到最后一个字形的右边缘为止
	contentW := rightEdge
	result.ContainerX, result.ContainerY, result.ContainerW, result.ContainerH =
		config.ContainerRect(viewportW, viewportH, contentW, contentH, layout.Padding)

	if result.ContainerW <= 0 || result.ContainerH <= 0 {
		return nil, ErrNoContainer
	}

	return result, nil
}

// NewLetterEntity 创建字母实体
//
// 字母从静止位置出发，速度为零，缩放为 1，字体轴为基准值，
// 振荡相位随机，使各字母的振荡互不同步。
//
// 参数:
//   - em: 实体管理器
//   - slot: 排版结果
//   - face: 字母专属字体面（可为 nil）
//   - axes: 字体轴配置
//   - rng: 随机数源
//
// 返回:
//   - ecs.EntityID: 新实体 ID
func NewLetterEntity(em *ecs.EntityManager, slot LetterSlot, face *text.GoTextFace, axes config.FontAxesConfig, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.LetterBodyComponent{
		HomeX:  slot.HomeX,
		HomeY:  slot.HomeY,
		X:      slot.HomeX,
		Y:      slot.HomeY,
		Width:  slot.Width,
		Height: slot.Height,
	})

	base := components.FontAxes{
		Weight: axes.BaseWeight,
		Width:  axes.BaseWidth,
		Slant:  axes.BaseSlant,
	}
	em.AddComponent(id, &components.LetterAppearanceComponent{
		ScaleX: 1, ScaleY: 1,
		TargetScaleX: 1, TargetScaleY: 1,
		Axes:        base,
		TargetAxes:  base,
		PhaseWeight: rng.Float64() * 2 * math.Pi,
		PhaseWidth:  rng.Float64() * 2 * math.Pi,
		PhaseSlant:  rng.Float64() * 2 * math.Pi,
		PhaseScaleX: rng.Float64() * 2 * math.Pi,
		PhaseScaleY: rng.Float64() * 2 * math.Pi * goldenRatio,
		Style: components.LetterStyle{
			ScaleX: 1, ScaleY: 1,
			Axes: base,
		},
	})

	em.AddComponent(id, &components.GlyphComponent{
		Char:  slot.Char,
		Index: slot.Index,
		Face:  face,
	})

	return id
}

// PopulateLetters 为排版结果中的每个字母创建实体
//
// 参数:
//   - em: 实体管理器
//   - layout: 排版结果
//   - faces: 字体面工厂（可为 nil）
//   - axes: 字体轴配置
//   - rng: 随机数源
//
// 返回:
//   - []ecs.EntityID: 按排版顺序创建的实体
func PopulateLetters(em *ecs.EntityManager, layout *TitleLayout, faces FaceFactory, axes config.FontAxesConfig, rng *rand.Rand) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(layout.Slots))
	for _, slot := range layout.Slots {
		var face *text.GoTextFace
		if faces != nil {
			face = faces()
		}
		ids = append(ids, NewLetterEntity(em, slot, face, axes, rng))
	}
	log.Printf("[Registry] Letters initialized: %d active, %d skipped", len(ids), layout.Skipped)
	return ids
}
