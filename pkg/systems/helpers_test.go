package systems

import (
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/ecs"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testWorld 系统测试共用的最小模拟环境
type testWorld struct {
	em      *ecs.EntityManager
	cfg     *config.PhysicsConfig
	pointer *components.PointerState
	frame   *components.FrameContext
}

func newTestWorld() *testWorld {
	pointer := &components.PointerState{}
	// 指针放在远处，默认不影响字母
	pointer.Reset(-10000, -10000)
	return &testWorld{
		em:      ecs.NewEntityManager(),
		cfg:     config.DefaultPhysicsConfig(),
		pointer: pointer,
		frame: &components.FrameContext{
			Now:     testEpoch,
			Pointer: pointer,
		},
	}
}

// addLetter 在 (x, y) 放置一个以该点为家的字母
func (w *testWorld) addLetter(x, y, width, height float64) (ecs.EntityID, *components.LetterBodyComponent, *components.LetterAppearanceComponent) {
	id := w.em.CreateEntity()
	body := &components.LetterBodyComponent{
		HomeX: x, HomeY: y,
		X: x, Y: y,
		Width: width, Height: height,
	}
	axes := w.cfg.FontAxes
	base := components.FontAxes{Weight: axes.BaseWeight, Width: axes.BaseWidth, Slant: axes.BaseSlant}
	app := &components.LetterAppearanceComponent{
		ScaleX: 1, ScaleY: 1,
		TargetScaleX: 1, TargetScaleY: 1,
		Axes:       base,
		TargetAxes: base,
	}
	w.em.AddComponent(id, body)
	w.em.AddComponent(id, app)
	return id, body, app
}

// advance 推进帧上下文
func (w *testWorld) advance(dt float64) {
	w.frame.DeltaTime = dt
	w.frame.Elapsed += dt
	w.frame.Now = w.frame.Now.Add(time.Duration(dt * float64(time.Second)))
}

// nominalDT 一个名义帧的秒数，冲量按此步长缩放后等于每帧的配置值
func (w *testWorld) nominalDT() float64 {
	return 1 / w.cfg.Physics.NominalFPS
}
