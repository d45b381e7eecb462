package editor

import (
	"reflect"
	"testing"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

func TestValueEditor_KeyTarget(t *testing.T) {
	l := floatList(0.2, 0.5)
	changes := 0
	l.SetOnChange(func() { changes++ })

	e, err := NewValueEditor(KeyTarget{List: l, Index: 0}, floatInfo(1), ValueEditorOptions{})
	if err != nil {
		t.Fatalf("NewValueEditor failed: %v", err)
	}
	if !reflect.DeepEqual(e.Labels, []string{"Value"}) || len(e.Boxes) != 1 {
		t.Fatalf("labels = %v, boxes = %d", e.Labels, len(e.Boxes))
	}
	if e.Boxes[0].Value() != 0.5 {
		t.Errorf("box value = %v, want 0.5", e.Boxes[0].Value())
	}

	e.Boxes[0].SetText("0.75")
	k, _ := l.Get(0)
	if k.Value != keyframe.Scalar(0.75) || changes != 1 {
		t.Errorf("key = %+v, changes = %d", k, changes)
	}
	if _, ok := e.Swatch(); ok {
		t.Error("non-colour property should have no swatch")
	}

	l.SetValue(0, keyframe.Scalar(-0.5))
	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if e.Boxes[0].Value() != -0.5 || e.Value() != keyframe.Scalar(-0.5) {
		t.Errorf("after Refresh box = %v value = %v", e.Boxes[0].Value(), e.Value())
	}
}

func TestValueEditor_Color(t *testing.T) {
	l := keyframe.MustNewList(keyframe.TypeVector4)
	l.Add(keyframe.Key{Time: 0, Value: keyframe.Vector4{X: 1, Y: 0, Z: 0, W: 1}})
	info := colorInfo2D(1, 1)

	e, err := NewValueEditor(KeyTarget{List: l, Index: 0}, info, ValueEditorOptions{})
	if err != nil {
		t.Fatalf("NewValueEditor failed: %v", err)
	}
	if !reflect.DeepEqual(e.Labels, []string{"R", "G", "B", "A"}) || len(e.Boxes) != 4 {
		t.Fatalf("labels = %v, boxes = %d", e.Labels, len(e.Boxes))
	}

	e.Boxes[1].SetText("0.5")
	k, _ := l.Get(0)
	if k.Value != (keyframe.Vector4{X: 1, Y: 0.5, Z: 0, W: 1}) {
		t.Errorf("value = %v", k.Value)
	}
	tint, ok := e.Swatch()
	if !ok || tint.Color.G != 0.5 {
		t.Errorf("Swatch() = %+v, %v", tint, ok)
	}
}

func TestValueEditor_TypeMismatch(t *testing.T) {
	l := floatList(0, 1)
	if _, err := NewValueEditor(KeyTarget{List: l, Index: 0}, colorInfo2D(1, 1), ValueEditorOptions{}); err == nil {
		t.Error("float key with Vector4 property should fail")
	}
	if _, err := NewValueEditor(KeyTarget{List: l, Index: 3}, floatInfo(1), ValueEditorOptions{}); err == nil {
		t.Error("out of range index should fail")
	}
}

func TestFillSingleValue(t *testing.T) {
	tests := []struct {
		name  string
		start *keyframe.List
	}{
		{"空列表", floatList()},
		{"少于四个", floatList(0.5, 3)},
		{"多于四个", floatList(0, 1, 0.2, 2, 0.4, 3, 0.6, 4, 0.8, 5, 1, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := FillSingleValue(tt.start, keyframe.Scalar(7)); err != nil {
				t.Fatalf("FillSingleValue failed: %v", err)
			}
			if tt.start.Count() != SingleValueKeys {
				t.Fatalf("count = %d, want %d", tt.start.Count(), SingleValueKeys)
			}
			for i, k := range tt.start.Keys() {
				if !approx(k.Time, float64(i)/3) || k.Value != keyframe.Scalar(7) {
					t.Errorf("key %d = %+v", i, k)
				}
			}
			if !tt.start.AllEqual() {
				t.Error("all values should be equal")
			}
		})
	}
}

func TestSingleValueTarget(t *testing.T) {
	l := floatList()
	target := SingleValueTarget{List: l, Default: keyframe.Scalar(1)}
	if v, _ := target.Get(); v != keyframe.Scalar(1) {
		t.Errorf("empty Get() = %v, want default 1", v)
	}

	e, err := NewValueEditor(target, floatInfo(1), ValueEditorOptions{Tooltip: "single"})
	if err != nil {
		t.Fatalf("NewValueEditor failed: %v", err)
	}
	e.Boxes[0].SetText("0.3")
	if l.Count() != SingleValueKeys {
		t.Fatalf("count = %d, want %d", l.Count(), SingleValueKeys)
	}
	if v, _ := target.Get(); v != keyframe.Scalar(0.3) {
		t.Errorf("Get() = %v, want 0.3", v)
	}
}
