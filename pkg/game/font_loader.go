package game

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gonewx/springtype/pkg/config"
	"github.com/gonewx/springtype/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFontName 后备字体名称（日志用）
const FallbackFontName = "Go Regular"

// FontLoadResult 字体加载结果
type FontLoadResult struct {
	Source *text.GoTextFaceSource
	// Name 字体文件路径，或后备字体名
	Name string
	// Fallback 是否使用了后备字体
	Fallback bool
	// Err 主字体加载失败的原因（Fallback 为 true 时可能非 nil）
	Err error
}

// FontLoader 在后台加载标题字体
//
// 加载成功立即交付；失败或超时后等待 FallbackDelay，再交付后备字体。
// 帧循环通过 Poll 非阻塞地查询结果，不会因磁盘读取而卡顿。
type FontLoader struct {
	path string
	cfg  config.FontLoadConfig

	// ReadFile 读取字体数据，默认 os.ReadFile，测试中可替换
	ReadFile func(path string) ([]byte, error)

	once   sync.Once
	result chan FontLoadResult

	mu    sync.Mutex
	done  bool
	value FontLoadResult
}

// NewFontLoader 创建字体加载器
//
// 参数:
//   - path: 字体文件路径，为空时直接使用后备字体
//   - cfg: 超时与后备延迟配置
func NewFontLoader(path string, cfg config.FontLoadConfig) *FontLoader {
	return &FontLoader{
		path:     path,
		cfg:      cfg,
		ReadFile: os.ReadFile,
		result:   make(chan FontLoadResult, 1),
	}
}

// Start 启动后台加载，重复调用无效
func (l *FontLoader) Start(ctx context.Context) {
	l.once.Do(func() {
		go func() {
			l.result <- l.load(ctx)
		}()
	})
}

// Poll 非阻塞地查询加载结果
//
// 返回:
//   - FontLoadResult: 加载结果
//   - bool: 结果是否已就绪
func (l *FontLoader) Poll() (FontLoadResult, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.value, true
	}
	select {
	case r := <-l.result:
		l.done = true
		l.value = r
		return r, true
	default:
		return FontLoadResult{}, false
	}
}

// Wait 阻塞直到加载完成或 ctx 结束
func (l *FontLoader) Wait(ctx context.Context) (FontLoadResult, error) {
	if r, ok := l.Poll(); ok {
		return r, nil
	}
	select {
	case r := <-l.result:
		l.mu.Lock()
		l.done = true
		l.value = r
		l.mu.Unlock()
		return r, nil
	case <-ctx.Done():
		return FontLoadResult{}, ctx.Err()
	}
}

func (l *FontLoader) load(ctx context.Context) FontLoadResult {
	if l.path == "" {
		log.Printf("[FontLoader] No font specified, using %s", FallbackFontName)
		return l.fallback(nil)
	}

	loadCtx, cancel := context.WithTimeout(ctx, l.cfg.LoadTimeout)
	defer cancel()

	src, err := l.loadSource(loadCtx)
	if err == nil {
		log.Printf("[FontLoader] Font loaded: %s", l.path)
		return FontLoadResult{Source: src, Name: l.path}
	}

	log.Printf("[FontLoader] Font loading error: %v, falling back in %s", err, l.cfg.FallbackDelay)
	select {
	case <-time.After(l.cfg.FallbackDelay):
	case <-ctx.Done():
	}
	return l.fallback(err)
}

// loadSource 读取并解析字体，读取本身不可取消，超时后放弃等待
func (l *FontLoader) loadSource(ctx context.Context) (*text.GoTextFaceSource, error) {
	type readResult struct {
		data []byte
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		data, err := l.ReadFile(l.path)
		ch <- readResult{data, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", l.path, r.err)
		}
		return ParseFontSource(r.data)
	case <-ctx.Done():
		return nil, fmt.Errorf("font load timed out after %s: %w", l.cfg.LoadTimeout, ctx.Err())
	}
}

func (l *FontLoader) fallback(cause error) FontLoadResult {
	src, err := FallbackFontSource()
	if err != nil {
		// 内置字体解析失败只可能是依赖损坏
		return FontLoadResult{Name: FallbackFontName, Fallback: true, Err: fmt.Errorf("fallback font unavailable: %w", err)}
	}
	return FontLoadResult{Source: src, Name: FallbackFontName, Fallback: true, Err: cause}
}

// ParseFontSource 从字体数据创建 GoTextFaceSource
func ParseFontSource(data []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return src, nil
}

// FallbackFontSource 返回内置的 Go Regular 字体（只解析一次）
var FallbackFontSource = sync.OnceValues(func() (*text.GoTextFaceSource, error) {
	return ParseFontSource(goregular.TTF)
})

// NewLetterFace 为单个字母创建字体面
//
// 每个字母独占一个字体面，逐帧设置字体轴时互不影响。
func NewLetterFace(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	return &text.GoTextFace{
		Source:    src,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
}

// FaceMeasurer 以基准字体轴测量字形
type FaceMeasurer struct {
	face *text.GoTextFace
}

// NewFaceMeasurer 创建测量器，字体轴固定为基准值
func NewFaceMeasurer(src *text.GoTextFaceSource, size float64, axes config.FontAxesConfig) *FaceMeasurer {
	face := NewLetterFace(src, size)
	utils.SetFontAxes(face, axes.BaseWeight, axes.BaseWidth, axes.BaseSlant)
	return &FaceMeasurer{face: face}
}

// MeasureGlyph 返回字形包围盒
func (m *FaceMeasurer) MeasureGlyph(r rune) (float64, float64) {
	return utils.MeasureGlyph(m.face, r)
}
