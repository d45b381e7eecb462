package game

import (
	"testing"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

func newColorProperty() *Property {
	return NewProperty(&keyframe.PropertyData{
		Name:          "Color",
		Type:          keyframe.TypeVector4,
		AnimationType: keyframe.Animated2D,
		Keys: []keyframe.KeyData{{
			Time:  0,
			Value: []float64{1, 0, 0.5, 1},
			Keys:  []keyframe.KeyData{{Time: 0, Value: []float64{1, 0, 0.5, 1}}},
		}},
	})
}

// TestProperty_SerializeIsDeep 测试 Serialize 返回的数据与宿主不共享
func TestProperty_SerializeIsDeep(t *testing.T) {
	p := newColorProperty()
	data, err := p.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	data.Keys[0].Keys[0].Value[0] = 9
	data.Keys[0].Time = 5

	if p.Data().Keys[0].Keys[0].Value[0] != 1 || p.Data().Keys[0].Time != 0 {
		t.Error("modifying serialized data changed the host")
	}
}

// TestProperty_Deserialize 测试有序插入与相同时间后写入生效
func TestProperty_Deserialize(t *testing.T) {
	p := newColorProperty()
	commits := 0
	p.OnCommit = func() { commits++ }

	p.ClearKeys()
	err := p.Deserialize(&keyframe.PropertyData{
		Name:          "Color",
		Type:          keyframe.TypeVector4,
		AnimationType: keyframe.Animated2D,
		Keys: []keyframe.KeyData{
			{Time: 5, Value: []float64{0, 0, 0, 1}, Keys: []keyframe.KeyData{
				{Time: 0.5, Value: []float64{1, 1, 1, 1}},
				{Time: 0, Value: []float64{0, 0, 0, 1}},
				{Time: 0.5, Value: []float64{0.2, 0.2, 0.2, 1}},
			}},
			{Time: 0, Value: []float64{1, 0, 0, 1}},
			{Time: 5, Value: []float64{0, 1, 0, 1}},
		},
	})
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if commits != 1 {
		t.Errorf("OnCommit calls = %d, want 1", commits)
	}

	keys := p.Data().Keys
	if len(keys) != 2 || keys[0].Time != 0 || keys[1].Time != 5 {
		t.Fatalf("outer keys = %+v, want times [0 5]", keys)
	}
	// 后写入的 t=5 关键帧替换了前一个，它没有内层关键帧
	if keys[1].Value[1] != 1 || len(keys[1].Keys) != 0 || keys[1].Keys == nil {
		t.Errorf("last write should win with an empty inner list, got %+v", keys[1])
	}
	if keys[0].Keys == nil {
		t.Error("2D outer keys always carry an inner list")
	}
}

// TestProperty_DeserializeInner 测试内层关键帧排序和去重
func TestProperty_DeserializeInner(t *testing.T) {
	p := newColorProperty()
	p.ClearKeys()
	err := p.Deserialize(&keyframe.PropertyData{
		Name:          "Color",
		Type:          keyframe.TypeVector4,
		AnimationType: keyframe.Animated2D,
		Keys: []keyframe.KeyData{{Time: 0, Value: []float64{0, 0, 0, 1}, Keys: []keyframe.KeyData{
			{Time: 0.5, Value: []float64{1, 1, 1, 1}},
			{Time: 0, Value: []float64{0, 0, 0, 1}},
			{Time: 0.5, Value: []float64{0.2, 0.2, 0.2, 1}},
		}}},
	})
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	inner := p.Data().Keys[0].Keys
	if len(inner) != 2 || inner[0].Time != 0 || inner[1].Time != 0.5 || inner[1].Value[0] != 0.2 {
		t.Errorf("inner keys = %+v", inner)
	}
}

// TestProperty_DeserializeRejects 测试不匹配的数据被拒绝且不修改宿主
func TestProperty_DeserializeRejects(t *testing.T) {
	tests := []struct {
		name string
		data *keyframe.PropertyData
	}{
		{"空数据", nil},
		{"类型不符", &keyframe.PropertyData{Name: "Color", Type: keyframe.TypeFloat, AnimationType: keyframe.Animated2D}},
		{"动画类型不符", &keyframe.PropertyData{Name: "Color", Type: keyframe.TypeVector4, AnimationType: keyframe.Animated}},
		{"分量数错误", &keyframe.PropertyData{Name: "Color", Type: keyframe.TypeVector4, AnimationType: keyframe.Animated2D,
			Keys: []keyframe.KeyData{{Time: 0, Value: []float64{1}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newColorProperty()
			p.OnCommit = func() { t.Error("OnCommit must not run on failure") }
			if err := p.Deserialize(tt.data); err == nil {
				t.Fatal("Deserialize() should fail")
			}
			if len(p.Data().Keys) != 1 {
				t.Error("host changed after a rejected Deserialize")
			}
		})
	}
}
