package entities

import (
	"testing"
	"time"

	"github.com/gonewx/springtype/pkg/components"
	"github.com/gonewx/springtype/pkg/ecs"
)

func TestNewShockwaveEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	id := NewShockwaveEntity(em, 120, 80, 5000, now)
	if id == 0 {
		t.Fatal("expected valid entity ID, got 0")
	}

	wave, ok := ecs.GetComponent[*components.ShockwaveComponent](em, id)
	if !ok {
		t.Fatal("shockwave component missing")
	}
	if wave.OriginX != 120 || wave.OriginY != 80 {
		t.Errorf("unexpected origin (%v, %v)", wave.OriginX, wave.OriginY)
	}
	if wave.Strength != 5000 {
		t.Errorf("expected strength 5000, got %v", wave.Strength)
	}
	if !wave.StartTime.Equal(now) {
		t.Errorf("expected start time %v, got %v", now, wave.StartTime)
	}
	if wave.Radius != 0 || wave.Age != 0 {
		t.Errorf("new shockwave should have zero radius and age")
	}
}
