package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/embedded"
)

func TestLoadPhysicsConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("physics:\n  maxSpeed: 12\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tests := []struct {
		name         string
		path         string
		embedded     fstest.MapFS
		wantErr      string
		wantMaxSpeed float64
	}{
		{
			name:         "显式配置文件",
			path:         good,
			wantMaxSpeed: 12,
		},
		{
			name:    "显式配置文件损坏",
			path:    bad,
			wantErr: "failed to load config",
		},
		{
			name:    "显式配置文件不存在",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: "failed to load config",
		},
		{
			name:         "使用嵌入配置",
			embedded:     fstest.MapFS{embedded.PhysicsConfigPath: {Data: []byte("physics:\n  maxSpeed: 77\n")}},
			wantMaxSpeed: 77,
		},
		{
			name:         "嵌入配置无效时退回默认值",
			embedded:     fstest.MapFS{embedded.PhysicsConfigPath: {Data: []byte("physics: [oops")}},
			wantMaxSpeed: config.DefaultPhysicsConfig().Physics.MaxSpeed,
		},
		{
			name:         "未初始化嵌入资源",
			wantMaxSpeed: config.DefaultPhysicsConfig().Physics.MaxSpeed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.embedded != nil {
				embedded.Init(tt.embedded)
			} else {
				embedded.Init(nil)
			}
			defer embedded.Init(nil)

			cfg, err := loadPhysicsConfig(tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Physics.MaxSpeed != tt.wantMaxSpeed {
				t.Errorf("expected maxSpeed %v, got %v", tt.wantMaxSpeed, cfg.Physics.MaxSpeed)
			}
		})
	}
}
