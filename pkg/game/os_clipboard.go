package game

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported 当前平台没有可用的系统剪贴板（如缺少 xclip/xsel）
var ErrClipboardUnsupported = errors.New("system clipboard is not available")

// OSClipboard 把编辑器剪贴板的文本同步到系统剪贴板
// 实现 editor.Mirror，编辑场景也用它复制和粘贴属性的 YAML 文本
type OSClipboard struct{}

// WriteText 写入系统剪贴板
func (OSClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadText 读取系统剪贴板文本
func (OSClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}
