package editor

import (
	"errors"
	"fmt"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

var (
	// ErrClipboardEmpty 剪贴板中没有可粘贴的值
	ErrClipboardEmpty = errors.New("clipboard is empty")
	// ErrNoStraddlingKeys 插值添加时瞄准位置左右没有关键帧
	ErrNoStraddlingKeys = errors.New("no keys on both sides of the aim position")
	// ErrNoAimedKey 需要瞄准关键帧的操作在未瞄准时调用
	ErrNoAimedKey = errors.New("no key aimed")
	// ErrKeyAimed 需要空白位置的操作在瞄准关键帧时调用
	ErrKeyAimed = errors.New("a key is aimed")
	// ErrBusy 拖动或编辑进行中，操作被拒绝
	ErrBusy = errors.New("timeline is busy")
)

// TypeMismatchError is returned when a clipboard value of one type is
// pasted onto a property of another type.
type TypeMismatchError struct {
	Have keyframe.ValueType
	Want keyframe.ValueType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot paste a '%s' type onto timeline's '%s' type", e.Have, e.Want)
}

// Axis names one of the two timeline axes of a property.
type Axis int

const (
	// AxisVertical is the outer (effect lifetime) axis.
	AxisVertical Axis = iota
	// AxisHorizontal is the inner (particle lifetime) axis of 2D properties.
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ValidationError 应用时关键帧数量低于最低要求
type ValidationError struct {
	Axis     Axis
	Count    int
	Required int
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Axis == AxisHorizontal {
		return fmt.Sprintf("One horizontal timeline has %d keys, should have at least %d\nReason: %s",
			e.Count, e.Required, e.Reason)
	}
	return fmt.Sprintf("The vertical timeline has %d keys, should have at least %d\nReason: %s",
		e.Count, e.Required, e.Reason)
}

// DecodeError wraps a failure to read raw property text. The session is
// left untouched when it is returned.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read property data: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage 返回错误在通知中显示的文本
func UserMessage(err error) string {
	var mismatch *TypeMismatchError
	switch {
	case errors.Is(err, ErrClipboardEmpty):
		return "Clipboard is empty, nothing to paste."
	case errors.Is(err, ErrNoStraddlingKeys):
		return "Aim between 2 existing keys to add one with interpolated value."
	case errors.As(err, &mismatch):
		return fmt.Sprintf("Cannot paste a '%s' type onto timeline's '%s' type.", mismatch.Have, mismatch.Want)
	}
	return err.Error()
}
