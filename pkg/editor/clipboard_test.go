package editor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

type mirrorRecorder struct {
	texts []string
	err   error
}

func (m *mirrorRecorder) WriteText(text string) error {
	m.texts = append(m.texts, text)
	return m.err
}

func TestClipboard(t *testing.T) {
	t.Run("空剪贴板", func(t *testing.T) {
		c := NewClipboard(nil)
		if _, ok := c.Peek(); ok {
			t.Error("new clipboard should be empty")
		}
		if _, err := c.CheckPaste(keyframe.TypeFloat); !errors.Is(err, ErrClipboardEmpty) {
			t.Errorf("err = %v, want ErrClipboardEmpty", err)
		}
	})

	t.Run("复制覆盖旧值且粘贴不清空", func(t *testing.T) {
		c := NewClipboard(nil)
		c.Copy(keyframe.Scalar(1))
		c.Copy(keyframe.Vector3{X: 1, Y: 2, Z: 3})
		for i := 0; i < 2; i++ {
			v, err := c.CheckPaste(keyframe.TypeVector3)
			if err != nil || v != (keyframe.Vector3{X: 1, Y: 2, Z: 3}) {
				t.Fatalf("CheckPaste #%d = %v, %v", i, v, err)
			}
		}
		c.Copy(nil)
		if v, _ := c.Peek(); v == nil {
			t.Error("copying nil must keep the old value")
		}
	})

	t.Run("类型不符", func(t *testing.T) {
		c := NewClipboard(nil)
		c.Copy(keyframe.Vector4{X: 1})
		_, err := c.CheckPaste(keyframe.TypeFloat)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) || mismatch.Have != keyframe.TypeVector4 || mismatch.Want != keyframe.TypeFloat {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("文本镜像", func(t *testing.T) {
		m := &mirrorRecorder{err: errors.New("no clipboard")}
		c := NewClipboard(m)
		c.Copy(keyframe.Vector3{X: 1, Y: 2, Z: 3})
		if len(m.texts) != 1 || m.texts[0] != "1  2  3" {
			t.Errorf("mirror texts = %q", m.texts)
		}
		if _, ok := c.Peek(); !ok {
			t.Error("mirror errors must not affect the stored value")
		}
		c.SetMirror(nil)
		c.Copy(keyframe.Scalar(1))
		if len(m.texts) != 1 {
			t.Error("mirror should be disabled")
		}
	})
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"剪贴板为空", ErrClipboardEmpty, "Clipboard is empty, nothing to paste."},
		{"没有左右关键帧", ErrNoStraddlingKeys, "Aim between 2 existing keys to add one with interpolated value."},
		{"类型不符", &TypeMismatchError{Have: keyframe.TypeFloat, Want: keyframe.TypeVector4},
			"Cannot paste a 'Float' type onto timeline's 'Vector4' type."},
		{"最少关键帧", &ValidationError{Axis: AxisVertical, Count: 0, Required: 1, Reason: "it can crash the game."},
			"The vertical timeline has 0 keys, should have at least 1\nReason: it can crash the game."},
		{"其他错误", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColors(t *testing.T) {
	t.Run("预览颜色归一化", func(t *testing.T) {
		tint := PreviewColor(keyframe.Vector4{X: 2, Y: 1, Z: 0, W: 0})
		if !approx(tint.Color.R, 1) || !approx(tint.Color.G, 0.5) || tint.Color.B != 0 {
			t.Errorf("color = %+v", tint.Color)
		}
		if tint.Alpha != 0.05 {
			t.Errorf("alpha = %v, want minimum 0.05", tint.Alpha)
		}
	})

	t.Run("预览颜色不超过一时保持原样", func(t *testing.T) {
		tint := PreviewColor(keyframe.Vector4{X: 0.2, Y: 0.4, Z: 0.6, W: 0.8})
		if tint.Color.R != 0.2 || tint.Color.B != 0.6 || tint.Alpha != 0.8 {
			t.Errorf("tint = %+v", tint)
		}
	})

	tests := []struct {
		name  string
		value float64
		want  color.NRGBA
	}{
		{"弱强度为灰色", 0.5, color.NRGBA{R: 128, G: 128, B: 128, A: 128}},
		{"零强度透明", 0, color.NRGBA{}},
		{"中等强度偏黄", 5, color.NRGBA{R: 255, G: 255, B: 128, A: 255}},
		{"强度很高时为蓝色", 1000, color.NRGBA{R: 0, G: 0, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntensityColor(tt.value).RGBA(); got != tt.want {
				t.Errorf("IntensityColor(%v) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}

	if got := ValueTint(keyframe.Vector3{X: 5}).RGBA(); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Vector3 tint = %+v, want white", got)
	}
}
