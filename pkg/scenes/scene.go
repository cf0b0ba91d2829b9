package scenes

import (
	"github.com/gonewx/springtype/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 编译期检查
var (
	_ game.Scene     = (*TitleScene)(nil)
	_ game.Resizable = (*TitleScene)(nil)
	_ game.Scene     = (*LoadingScene)(nil)
)
