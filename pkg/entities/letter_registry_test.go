package entities

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
)

// fixedMeasurer 按字符返回固定尺寸，未登记的字符宽 20 高 40
type fixedMeasurer map[rune][2]float64

func (m fixedMeasurer) MeasureGlyph(r rune) (float64, float64) {
	if size, ok := m[r]; ok {
		return size[0], size[1]
	}
	return 20, 40
}

func testLayoutConfig() config.LayoutConfig {
	return config.LayoutConfig{LetterGap: 4, SpacerWidth: 10, Padding: 8}
}

func TestLayoutTitle(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		measurer    fixedMeasurer
		viewportW   float64
		viewportH   float64
		wantErr     error
		wantSlots   int
		wantSkipped int
		validate    func(*testing.T, *TitleLayout)
	}{
		{
			name:      "单个单词",
			title:     "AB",
			measurer:  fixedMeasurer{},
			viewportW: 800, viewportH: 600,
			wantSlots: 2,
			validate: func(t *testing.T, l *TitleLayout) {
				// A: 8 + 0 + 10 = 18, B: 8 + 24 + 10 = 42
				if l.Slots[0].HomeX != 18 || l.Slots[1].HomeX != 42 {
					t.Errorf("unexpected home x: %v, %v", l.Slots[0].HomeX, l.Slots[1].HomeX)
				}
				if l.Slots[0].HomeY != 28 {
					t.Errorf("expected home y 28, got %v", l.Slots[0].HomeY)
				}
				// 内容宽 44，容器宽 44 + 16
				if l.ContainerW != 60 || l.ContainerH != 56 {
					t.Errorf("unexpected container size %vx%v", l.ContainerW, l.ContainerH)
				}
				if l.ContainerX != 370 || l.ContainerY != 272 {
					t.Errorf("unexpected container origin (%v, %v)", l.ContainerX, l.ContainerY)
				}
			},
		},
		{
			name:      "空格不产生字母",
			title:     "A B",
			measurer:  fixedMeasurer{},
			viewportW: 800, viewportH: 600,
			wantSlots: 2,
			validate: func(t *testing.T, l *TitleLayout) {
				// B 在 A(20) + gap(4) + spacer(10) 之后
				if got := l.Slots[1].HomeX; got != 8+34+10 {
					t.Errorf("expected B home x 52, got %v", got)
				}
				if l.Slots[1].Index != 2 {
					t.Errorf("expected rune index 2, got %d", l.Slots[1].Index)
				}
			},
		},
		{
			name:      "首尾空白不计入内容宽度",
			title:     "  AB   ",
			measurer:  fixedMeasurer{},
			viewportW: 800, viewportH: 600,
			wantSlots: 2,
			validate: func(t *testing.T, l *TitleLayout) {
				// 与 "AB" 完全相同：容器居中，不向任何一侧偏移
				if l.Slots[0].HomeX != 18 || l.Slots[1].HomeX != 42 {
					t.Errorf("unexpected home x: %v, %v", l.Slots[0].HomeX, l.Slots[1].HomeX)
				}
				if l.ContainerW != 60 || l.ContainerX != 370 {
					t.Errorf("expected container 60 wide at x 370, got %v at %v", l.ContainerW, l.ContainerX)
				}
			},
		},
		{
			name:        "末尾零尺寸字形不占宽度",
			title:       "ABx",
			measurer:    fixedMeasurer{'x': {0, 40}},
			viewportW:   800, viewportH: 600,
			wantSlots:   2,
			wantSkipped: 1,
			validate: func(t *testing.T, l *TitleLayout) {
				if l.ContainerW != 60 {
					t.Errorf("expected container width 60, got %v", l.ContainerW)
				}
			},
		},
		{
			name:        "零尺寸字形被跳过",
			title:       "AxB",
			measurer:    fixedMeasurer{'x': {0, 40}},
			viewportW:   800, viewportH: 600,
			wantSlots:   2,
			wantSkipped: 1,
		},
		{
			name:        "全部字形无效",
			title:       "xx",
			measurer:    fixedMeasurer{'x': {10, 0}},
			viewportW:   800, viewportH: 600,
			wantErr:     ErrNoLetters,
			wantSkipped: 2,
		},
		{
			name:      "空标题",
			title:     "",
			measurer:  fixedMeasurer{},
			viewportW: 800, viewportH: 600,
			wantErr:   ErrNoLetters,
		},
		{
			name:      "视口为零",
			title:     "AB",
			measurer:  fixedMeasurer{},
			viewportW: 0, viewportH: 600,
			wantErr:   ErrNoContainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := LayoutTitle(tt.title, tt.measurer, tt.viewportW, tt.viewportH, testLayoutConfig())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if layout != nil && layout.Skipped != tt.wantSkipped {
					t.Errorf("expected %d skipped, got %d", tt.wantSkipped, layout.Skipped)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(layout.Slots) != tt.wantSlots {
				t.Fatalf("expected %d slots, got %d", tt.wantSlots, len(layout.Slots))
			}
			if layout.Skipped != tt.wantSkipped {
				t.Errorf("expected %d skipped, got %d", tt.wantSkipped, layout.Skipped)
			}
			if tt.validate != nil {
				tt.validate(t, layout)
			}
		})
	}
}

func TestLayoutTitleNilMeasurer(t *testing.T) {
	if _, err := LayoutTitle("A", nil, 100, 100, testLayoutConfig()); err == nil {
		t.Fatal("expected error for nil measurer")
	}
}

func TestPopulateLetters(t *testing.T) {
	layout, err := LayoutTitle("NILS", fixedMeasurer{}, 800, 600, testLayoutConfig())
	if err != nil {
		t.Fatalf("LayoutTitle: %v", err)
	}

	em := ecs.NewEntityManager()
	axes := config.DefaultPhysicsConfig().FontAxes
	ids := PopulateLetters(em, layout, nil, axes, rand.New(rand.NewSource(1)))

	if len(ids) != 4 {
		t.Fatalf("expected 4 letters, got %d", len(ids))
	}

	for i, id := range ids {
		body, ok := ecs.GetComponent[*components.LetterBodyComponent](em, id)
		if !ok {
			t.Fatalf("letter %d missing body", i)
		}
		if body.X != body.HomeX || body.Y != body.HomeY {
			t.Errorf("letter %d should start at home", i)
		}
		if body.VX != 0 || body.VY != 0 {
			t.Errorf("letter %d should start at rest", i)
		}

		app, ok := ecs.GetComponent[*components.LetterAppearanceComponent](em, id)
		if !ok {
			t.Fatalf("letter %d missing appearance", i)
		}
		if app.ScaleX != 1 || app.ScaleY != 1 {
			t.Errorf("letter %d should start at scale 1", i)
		}
		if app.Axes.Weight != axes.BaseWeight || app.Axes.Width != axes.BaseWidth {
			t.Errorf("letter %d should start at base axes, got %+v", i, app.Axes)
		}
		for _, phase := range []float64{app.PhaseWeight, app.PhaseWidth, app.PhaseSlant, app.PhaseScaleX} {
			if phase < 0 || phase >= 2*math.Pi {
				t.Errorf("phase %v outside [0, 2π)", phase)
			}
		}
		if app.PhaseScaleY < 0 || app.PhaseScaleY >= 2*math.Pi*goldenRatio {
			t.Errorf("scaleY phase %v outside [0, 2πφ)", app.PhaseScaleY)
		}

		glyph, ok := ecs.GetComponent[*components.GlyphComponent](em, id)
		if !ok {
			t.Fatalf("letter %d missing glyph", i)
		}
		if glyph.Char != []rune("NILS")[i] {
			t.Errorf("letter %d has char %q", i, glyph.Char)
		}
	}
}
