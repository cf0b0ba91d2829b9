// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gonewx/springtype/pkg/config"
)

// PhysicsConfigPath 嵌入的默认调参文件
const PhysicsConfigPath = "data/physics.yaml"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// ReadFile 读取嵌入文件
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	_, err := ReadFile(path)
	return err == nil
}

// LoadPhysicsConfig 加载嵌入的默认调参
//
// 返回:
//   - *config.PhysicsConfig: 以 DefaultPhysicsConfig 为底、叠加嵌入文件后的配置
//   - error: 未初始化、文件缺失或内容无效
func LoadPhysicsConfig() (*config.PhysicsConfig, error) {
	data, err := ReadFile(PhysicsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded physics config: %w", err)
	}
	return config.ParsePhysicsConfig(data)
}
