package config

// 窗口与标题布局常量
// 本文件定义了窗口默认尺寸和默认标题文本，运行时可由命令行参数覆盖

const (
	// DefaultWindowWidth 默认窗口宽度（像素）
	DefaultWindowWidth = 1024

	// DefaultWindowHeight 默认窗口高度（像素）
	DefaultWindowHeight = 576

	// DefaultTitleText 默认标题文本，空格会被排版为字间空隙而非粒子
	DefaultTitleText = "NILS ADAM"

	// DefaultWindowTitle 窗口标题栏文本
	DefaultWindowTitle = "springtype"

	// DefaultTPS 默认逻辑帧率（每秒 Update 次数）
	DefaultTPS = 60
)

// ContainerRect 计算标题容器在视口中的位置
//
// 容器在视口中居中，尺寸为内容尺寸加上两侧内边距。
//
// 参数:
//   - viewportW, viewportH: 视口尺寸
//   - contentW, contentH: 已排版内容的尺寸
//   - padding: 内边距
//
// 返回:
//   - x, y: 容器左上角（视口坐标）
//   - w, h: 容器尺寸
func ContainerRect(viewportW, viewportH, contentW, contentH, padding float64) (x, y, w, h float64) {
	w = contentW + padding*2
	h = contentH + padding*2
	x = (viewportW - w) / 2
	y = (viewportH - h) / 2
	return x, y, w, h
}
