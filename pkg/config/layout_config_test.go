package config

import (
	"testing"
)

// TestContainerRect 测试标题容器在视口中的居中计算
func TestContainerRect(t *testing.T) {
	tests := []struct {
		name                 string
		viewportW, viewportH float64
		contentW, contentH   float64
		padding              float64
		wantX, wantY         float64
		wantW, wantH         float64
	}{
		{
			name:      "默认窗口",
			viewportW: 1000, viewportH: 600,
			contentW: 400, contentH: 100,
			padding: 20,
			wantX:   280, wantY: 230,
			wantW: 440, wantH: 140,
		},
		{
			name:      "无内边距",
			viewportW: 800, viewportH: 600,
			contentW: 200, contentH: 100,
			wantX: 300, wantY: 250,
			wantW: 200, wantH: 100,
		},
		{
			// 内容比视口宽时容器左上角为负，标题两侧被裁切
			name:      "内容超出视口",
			viewportW: 300, viewportH: 200,
			contentW: 500, contentH: 100,
			padding: 10,
			wantX:   -110, wantY: 40,
			wantW: 520, wantH: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := ContainerRect(tt.viewportW, tt.viewportH, tt.contentW, tt.contentH, tt.padding)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ContainerRect() origin = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ContainerRect() size = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
