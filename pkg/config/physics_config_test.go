package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadPhysicsConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *PhysicsConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
physics:
  maxSpeed: 200
  mouseRadius: 80
shockwave:
  duration: 2.5
layout:
  resizeDebounce: 100ms
`,
			validate: func(t *testing.T, cfg *PhysicsConfig) {
				if cfg.Physics.MaxSpeed != 200 {
					t.Errorf("expected maxSpeed = 200, got %f", cfg.Physics.MaxSpeed)
				}
				if cfg.Physics.MouseRadius != 80 {
					t.Errorf("expected mouseRadius = 80, got %f", cfg.Physics.MouseRadius)
				}
				if cfg.Shockwave.Duration != 2.5 {
					t.Errorf("expected duration = 2.5, got %f", cfg.Shockwave.Duration)
				}
				if cfg.Layout.ResizeDebounce != 100*time.Millisecond {
					t.Errorf("expected resizeDebounce = 100ms, got %s", cfg.Layout.ResizeDebounce)
				}
				// 未覆盖字段保持默认
				if cfg.Physics.DragFactor != 0.12 {
					t.Errorf("expected default dragFactor = 0.12, got %f", cfg.Physics.DragFactor)
				}
				if cfg.Physics.CollisionIterations != 8 {
					t.Errorf("expected default collisionIterations = 8, got %d", cfg.Physics.CollisionIterations)
				}
			},
		},
		{
			name: "debug color array",
			yamlContent: `
debug:
  shockwaveColor: [255, 0, 0, 128]
`,
			validate: func(t *testing.T, cfg *PhysicsConfig) {
				c := cfg.ShockwaveRingColor()
				if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 128 {
					t.Errorf("unexpected shockwave color %+v", c)
				}
			},
		},
		{
			name: "inverted weight range",
			yamlContent: `
fontAxes:
  minWeight: 900
  maxWeight: 100
`,
			wantErr:     true,
			errContains: "weight axis range invalid",
		},
		{
			name: "base slant outside range",
			yamlContent: `
fontAxes:
  baseSlant: 5
`,
			wantErr:     true,
			errContains: "slant base",
		},
		{
			name: "drag factor out of range",
			yamlContent: `
physics:
  dragFactor: 1.5
`,
			wantErr:     true,
			errContains: "dragFactor",
		},
		{
			name: "zero collision iterations",
			yamlContent: `
physics:
  collisionIterations: 0
`,
			wantErr:     true,
			errContains: "collisionIterations",
		},
		{
			name: "inverted strength range",
			yamlContent: `
shockwave:
  minStrength: 10
  maxStrength: 1
`,
			wantErr:     true,
			errContains: "strength range invalid",
		},
		{
			name:        "malformed yaml",
			yamlContent: "physics: [unclosed",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "physics.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			cfg, err := LoadPhysicsConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadPhysicsConfigMissingFile(t *testing.T) {
	_, err := LoadPhysicsConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read physics config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestEmbeddedDefaultsMatch 确保 data/physics.yaml 与 DefaultPhysicsConfig 一致
func TestEmbeddedDefaultsMatch(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "physics.yaml"))
	if err != nil {
		t.Skipf("data/physics.yaml not available: %v", err)
	}

	fromFile, err := ParsePhysicsConfig(data)
	if err != nil {
		t.Fatalf("failed to parse data/physics.yaml: %v", err)
	}

	if *fromFile != *DefaultPhysicsConfig() {
		t.Errorf("data/physics.yaml drifted from DefaultPhysicsConfig:\nfile:    %+v\ndefault: %+v",
			*fromFile, *DefaultPhysicsConfig())
	}
}

func TestDefaultPhysicsConfigValid(t *testing.T) {
	if err := DefaultPhysicsConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestShockwaveStrength(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	minS, maxS, capS := cfg.Shockwave.MinStrength, cfg.Shockwave.MaxStrength, cfg.Shockwave.ChargeDurationCap

	tests := []struct {
		name string
		hold float64
		want float64
	}{
		{"instant click", 0, minS},
		{"negative hold clamps to min", -1, minS},
		{"quarter charge", capS / 4, minS + (maxS-minS)*0.25},
		{"half charge", capS / 2, minS + (maxS-minS)*0.5},
		{"exactly cap", capS, maxS},
		{"beyond cap", capS * 3, maxS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.ShockwaveStrength(tt.hold)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ShockwaveStrength(%v) = %v, want %v", tt.hold, got, tt.want)
			}
			if got > maxS {
				t.Errorf("strength %v exceeds max %v", got, maxS)
			}
		})
	}
}

// TestShockwaveRingColorIsStraightAlpha 预乘后的各通道不能超过 alpha，
// 且还原后应与配置的 rgba(0, 150, 255, 0.8) 一致
func TestShockwaveRingColorIsStraightAlpha(t *testing.T) {
	c := DefaultPhysicsConfig().ShockwaveRingColor()
	r, g, b, a := c.RGBA()
	if r > a || g > a || b > a {
		t.Fatalf("invalid premultiplied color: r=%d g=%d b=%d a=%d", r, g, b, a)
	}

	straight := color.NRGBAModel.Convert(c).(color.NRGBA)
	want := color.NRGBA{R: 0, G: 150, B: 255, A: 204}
	if straight != want {
		t.Errorf("ring color = %+v, want %+v", straight, want)
	}
}
