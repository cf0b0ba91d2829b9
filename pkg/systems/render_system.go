package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// debugBoxAlpha 调试模式下字母色块的不透明度（0.7）
const debugBoxAlpha = 179

// debugBorderColor 调试色块描边
var debugBorderColor = color.NRGBA{R: 0, G: 0, B: 0, A: 128}

// RenderSystem 绘制标题字母
//
// 每个字母以其当前中心为锚点，按 缩放 → 旋转 → 平移 的顺序变换，
// 与 CSS 的 translate() rotate() scale() 叠加顺序一致。
// 调试模式下字形被隐藏，改为按速度着色的色块。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	// TextColor 正常模式下的字形颜色
	TextColor color.Color

	whitePixel *ebiten.Image
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		TextColor:     color.White,
	}
}

// Draw 绘制所有字母
//
// 参数:
//   - screen: 目标图像
//   - containerX, containerY: 容器左上角的视口坐标
//   - debug: 是否以调试色块代替字形
func (s *RenderSystem) Draw(screen *ebiten.Image, containerX, containerY float64, debug bool) {
	ids := ecs.GetEntitiesWith3[*components.LetterBodyComponent, *components.LetterAppearanceComponent, *components.GlyphComponent](s.entityManager)
	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.LetterBodyComponent](s.entityManager, id)
		app, _ := ecs.GetComponent[*components.LetterAppearanceComponent](s.entityManager, id)
		glyph, _ := ecs.GetComponent[*components.GlyphComponent](s.entityManager, id)
		if body == nil || app == nil || glyph == nil {
			continue
		}

		cx := containerX + body.X
		cy := containerY + body.Y
		if debug {
			s.drawDebugBox(screen, body, app.Style, cx, cy)
			continue
		}
		s.drawGlyph(screen, glyph, app.Style, cx, cy)
	}
}

func (s *RenderSystem) drawGlyph(screen *ebiten.Image, glyph *components.GlyphComponent, style components.LetterStyle, cx, cy float64) {
	if glyph.Face == nil {
		return
	}
	utils.SetFontAxes(glyph.Face, style.Axes.Weight, style.Axes.Width, style.Axes.Slant)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(style.ScaleX, style.ScaleY)
	op.GeoM.Rotate(style.Rotation * math.Pi / 180)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(s.TextColor)
	op.Filter = ebiten.FilterLinear

	text.Draw(screen, string(glyph.Char), glyph.Face, op)
}

func (s *RenderSystem) drawDebugBox(screen *ebiten.Image, body *components.LetterBodyComponent, style components.LetterStyle, cx, cy float64) {
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(color.White)
	}

	w := body.Width * style.ScaleX
	h := body.Height * style.ScaleY
	rad := style.Rotation * math.Pi / 180

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rad)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(SpeedColor(style.SpeedRatio))
	screen.DrawImage(s.whitePixel, op)

	corners := BoxCorners(cx, cy, w, h, rad)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, debugBorderColor, true)
	}
}

// SpeedColor 调试色块颜色：静止为蓝色（色相 240），最快为红色（色相 0）
//
// 对应 hsla(240 × (1 - ratio), 100%, 60%, 0.7)。
func SpeedColor(speedRatio float64) color.NRGBA {
	hue := utils.Lerp(240, 0, utils.Clamp(speedRatio, 0, 1))
	r, g, b := colorful.Hsl(hue, 1, 0.6).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: debugBoxAlpha}
}

// BoxCorners 返回以 (cx, cy) 为中心、旋转 rad 弧度的矩形四个顶点（顺时针）
func BoxCorners(cx, cy, w, h, rad float64) [4][2]float64 {
	sin, cos := math.Sincos(rad)
	local := [4][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{w / 2, h / 2},
		{-w / 2, h / 2},
	}
	var out [4][2]float64
	for i, p := range local {
		out[i][0] = cx + p[0]*cos - p[1]*sin
		out[i][1] = cy + p[0]*sin + p[1]*cos
	}
	return out
}
