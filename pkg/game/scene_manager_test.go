package game

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	now          time.Time
}

// Update records that Update was called and stores the instant.
func (m *MockScene) Update(now time.Time) {
	m.updateCalled = true
	m.now = now
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// MockResizableScene additionally records Resize calls.
type MockResizableScene struct {
	MockScene
	resizes       int
	width, height int
}

func (m *MockResizableScene) Resize(width, height int, now time.Time) {
	m.resizes++
	m.width, m.height = width, height
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.GetCurrentScene() != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update forwards the instant to the current scene.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	now := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	sm.Update(now)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if !mockScene.now.Equal(now) {
		t.Errorf("Expected now %v, got %v", now, mockScene.now)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw are safe without a scene.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(time.Now())
	sm.Resize(100, 100, time.Now())
}

// TestSceneManagerResize verifies size forwarding and deduplication.
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockResizableScene{}
	sm.SwitchTo(scene)

	now := time.Now()
	sm.Resize(800, 600, now)
	sm.Resize(800, 600, now)
	if scene.resizes != 1 {
		t.Errorf("expected 1 resize, got %d", scene.resizes)
	}

	sm.Resize(1024, 768, now)
	if scene.resizes != 2 || scene.width != 1024 || scene.height != 768 {
		t.Errorf("unexpected resize state: %+v", scene)
	}

	// 新场景切入时立即获得已知尺寸
	next := &MockResizableScene{}
	sm.SwitchTo(next)
	if next.resizes != 1 || next.width != 1024 {
		t.Errorf("new scene should receive current size, got %+v", next)
	}
}
