package editor

import (
	"log"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

// Mirror receives a text copy of every copied value (for example the OS
// clipboard). Errors are logged and never surfaced to the user.
type Mirror interface {
	WriteText(text string) error
}

// Clipboard 是整个编辑器共享的单槽剪贴板
//
// 每次复制覆盖旧值，粘贴只读取不清空。
// 由调用方创建一个实例并以指针注入到所有时间轴。
type Clipboard struct {
	value  keyframe.Value
	mirror Mirror
}

// NewClipboard 创建空剪贴板
//
// 参数:
//
//	mirror - 可选的文本镜像（nil 表示不镜像）
func NewClipboard(mirror Mirror) *Clipboard {
	return &Clipboard{mirror: mirror}
}

// SetMirror replaces the text mirror; nil disables mirroring.
func (c *Clipboard) SetMirror(m Mirror) {
	c.mirror = m
}

// Copy stores v, replacing whatever was there.
func (c *Clipboard) Copy(v keyframe.Value) {
	if v == nil {
		return
	}
	c.value = v
	if c.mirror != nil {
		if err := c.mirror.WriteText(v.String()); err != nil {
			log.Printf("[Clipboard] 镜像写入失败: %v", err)
		}
	}
}

// Peek returns the stored value without clearing it.
func (c *Clipboard) Peek() (keyframe.Value, bool) {
	return c.value, c.value != nil
}

// CheckPaste 检查剪贴板内容能否粘贴到 dest 类型的属性
//
// 返回:
//
//	keyframe.Value - 可粘贴的值
//	error - 剪贴板为空返回 ErrClipboardEmpty，类型不符返回 *TypeMismatchError
func (c *Clipboard) CheckPaste(dest keyframe.ValueType) (keyframe.Value, error) {
	if c.value == nil {
		return nil, ErrClipboardEmpty
	}
	if c.value.Type() != dest {
		return nil, &TypeMismatchError{Have: c.value.Type(), Want: dest}
	}
	return c.value, nil
}
