package systems

import (
	"math"
	"testing"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/ecs"
	"github.com/gonewx/springtype/pkg/utils"
)

func newTestInput(w *testWorld) (*InputSystem, *utils.ManualInput, *utils.ManualClock) {
	in := &utils.ManualInput{}
	clock := utils.NewManualClock()
	return NewInputSystem(w.em, w.cfg, in, w.pointer), in, clock
}

func shockwaves(w *testWorld) []*components.ShockwaveComponent {
	var out []*components.ShockwaveComponent
	for _, id := range ecs.GetEntitiesWith1[*components.ShockwaveComponent](w.em) {
		wave, _ := ecs.GetComponent[*components.ShockwaveComponent](w.em, id)
		out = append(out, wave)
	}
	return out
}

func TestInputPointerVelocity(t *testing.T) {
	w := newTestWorld()
	sys, in, clock := newTestInput(w)
	w.pointer.Reset(100, 100)

	in.MoveTo(110, 95)
	sys.Update(clock.Now())
	if w.pointer.VX != 10 || w.pointer.VY != -5 {
		t.Errorf("expected velocity (10, -5), got (%v, %v)", w.pointer.VX, w.pointer.VY)
	}

	// 指针不动时速度归零
	sys.Update(clock.Advance(16 * time.Millisecond))
	if w.pointer.VX != 0 || w.pointer.VY != 0 {
		t.Errorf("expected zero velocity, got (%v, %v)", w.pointer.VX, w.pointer.VY)
	}
}

func TestInputChargeAndRelease(t *testing.T) {
	chargeCap := 32.0
	tests := []struct {
		name   string
		hold   time.Duration
		wantSR float64
	}{
		{"短按", 0, 0},
		{"蓄力四分之一", 8 * time.Second, 0.25},
		{"蓄力一半", 16 * time.Second, 0.5},
		{"超过上限", 60 * time.Second, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			sys, in, clock := newTestInput(w)

			in.MoveTo(200, 150)
			in.Press(utils.PointerPrimary)
			sys.Update(clock.Now())
			if !w.pointer.Pressed {
				t.Fatal("primary press should start charging")
			}

			// 松开位置与按下位置不同，冲击波仍从按下位置发出
			in.MoveTo(400, 300)
			now := clock.Advance(tt.hold)
			sys.UpdateCharge(now)
			if want := math.Min(tt.hold.Seconds()/chargeCap, 1); math.Abs(w.pointer.ChargeRatio-want) > 1e-9 {
				t.Errorf("expected charge ratio %.3f, got %.3f", want, w.pointer.ChargeRatio)
			}

			in.Release(utils.PointerPrimary)
			sys.Update(now)

			waves := shockwaves(w)
			if len(waves) != 1 {
				t.Fatalf("expected 1 shockwave, got %d", len(waves))
			}
			s := w.cfg.Shockwave
			want := s.MinStrength + (s.MaxStrength-s.MinStrength)*tt.wantSR
			if math.Abs(waves[0].Strength-want) > 1e-6 {
				t.Errorf("expected strength %.2f, got %.2f", want, waves[0].Strength)
			}
			if waves[0].Strength > s.MaxStrength {
				t.Errorf("strength exceeds maximum")
			}
			if waves[0].OriginX != 200 || waves[0].OriginY != 150 {
				t.Errorf("expected origin at press position, got (%v, %v)", waves[0].OriginX, waves[0].OriginY)
			}
			if !waves[0].StartTime.Equal(now) {
				t.Errorf("shockwave should start at release time")
			}
			if w.pointer.Pressed || w.pointer.ChargeRatio != 0 {
				t.Errorf("release should return to idle")
			}
		})
	}
}

func TestInputIgnoredEvents(t *testing.T) {
	tests := []struct {
		name   string
		script func(in *utils.ManualInput)
	}{
		{"没有按下的释放", func(in *utils.ManualInput) {
			in.Release(utils.PointerPrimary)
		}},
		{"右键", func(in *utils.ManualInput) {
			in.Press(utils.PointerSecondary)
			in.Release(utils.PointerSecondary)
		}},
		{"中键", func(in *utils.ManualInput) {
			in.Press(utils.PointerMiddle)
			in.Release(utils.PointerMiddle)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			sys, in, clock := newTestInput(w)
			tt.script(in)
			sys.Update(clock.Now())

			if n := len(shockwaves(w)); n != 0 {
				t.Errorf("expected no shockwave, got %d", n)
			}
			if w.pointer.Pressed {
				t.Error("pointer should stay idle")
			}
		})
	}
}

func TestInputDebugToggle(t *testing.T) {
	w := newTestWorld()
	sys, in, _ := newTestInput(w)
	toggles := 0
	sys.OnDebugToggle = func() { toggles++ }

	in.ToggleDebug()
	sys.PollDebugToggle()
	if toggles != 1 {
		t.Fatalf("expected 1 toggle, got %d", toggles)
	}

	// 文本框持有焦点时忽略快捷键
	in.Focused = true
	in.ToggleDebug()
	sys.PollDebugToggle()
	if toggles != 1 {
		t.Errorf("toggle should be ignored while text is focused, got %d", toggles)
	}
}

func TestInputCancelCharge(t *testing.T) {
	w := newTestWorld()
	sys, in, clock := newTestInput(w)

	in.Press(utils.PointerPrimary)
	sys.Update(clock.Now())
	sys.CancelCharge()

	in.Release(utils.PointerPrimary)
	sys.Update(clock.Advance(time.Second))
	if n := len(shockwaves(w)); n != 0 {
		t.Errorf("cancelled charge should not emit a shockwave, got %d", n)
	}
}
