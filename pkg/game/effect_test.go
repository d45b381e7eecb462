package game

import (
	"testing"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/config"
)

const testPropertyTable = `
properties:
  emitter/Color:
    type: Vector4
    animation: Animated2D
    color: true
    range: { min: 0, max: 1, default: [1, 0, 0.5, 1] }
  emitter/Emissivity:
    name: Emissivity Level
    type: Float
    animation: Animated2D
    requiredKeys2D: 4
    range: { min: 0, max: 1000, default: [0] }
  emitter/ParticlesPerSecond:
    type: Float
    animation: Animated
    requiredKeys1D: 0
    range: { min: 0, max: 1000 }
  emitter/Velocity:
    type: Float
    animation: Animated
    requiredKeys1D: 3
    range: { min: 0, max: 100, default: [2] }
  light/Range:
    type: Float
    animation: Animated
`

func loadTestTable(t *testing.T) *config.PropertyTable {
	t.Helper()
	table, err := config.ParsePropertyTable([]byte(testPropertyTable))
	if err != nil {
		t.Fatalf("ParsePropertyTable() error: %v", err)
	}
	return table
}

// TestNewEffect 测试按元数据表生成默认效果
func TestNewEffect(t *testing.T) {
	e, err := NewEffect("Fire", KindEmitter, loadTestTable(t))
	if err != nil {
		t.Fatalf("NewEffect() error: %v", err)
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("default effect should validate: %v", err)
	}

	want := []string{"Color", "Emissivity", "ParticlesPerSecond", "Velocity"}
	got := e.PropertyNames()
	if len(got) != len(want) {
		t.Fatalf("PropertyNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PropertyNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	tests := []struct {
		name       string
		property   string
		anim       keyframe.AnimationType
		outerCount int
		innerCount int
		lastTime   float64
		value0     float64
	}{
		{name: "二维颜色", property: "Color", anim: keyframe.Animated2D, outerCount: 1, innerCount: 1, value0: 1},
		{name: "二维至少 4 个内层关键帧", property: "Emissivity", anim: keyframe.Animated2D, outerCount: 1, innerCount: 4, lastTime: 1},
		{name: "一维最少 0 个仍生成 1 个", property: "ParticlesPerSecond", anim: keyframe.Animated, outerCount: 1, value0: 1},
		{name: "一维均匀分布", property: "Velocity", anim: keyframe.Animated, outerCount: 3, lastTime: 1, value0: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := e.Property(tt.property)
			if err != nil {
				t.Fatalf("Property() error: %v", err)
			}
			d := p.Data()
			if d.AnimationType != tt.anim || len(d.Keys) != tt.outerCount {
				t.Fatalf("got %s with %d keys", d.AnimationType, len(d.Keys))
			}
			if d.Keys[0].Value[0] != tt.value0 {
				t.Errorf("value = %v, want %v", d.Keys[0].Value[0], tt.value0)
			}
			keys := d.Keys
			if tt.anim == keyframe.Animated2D {
				keys = d.Keys[0].Keys
				if len(keys) != tt.innerCount {
					t.Fatalf("inner keys = %d, want %d", len(keys), tt.innerCount)
				}
			}
			if last := keys[len(keys)-1].Time; last != tt.lastTime {
				t.Errorf("last time = %v, want %v", last, tt.lastTime)
			}
		})
	}

	if _, err := e.Property("Missing"); err == nil {
		t.Error("Property() should fail for unknown names")
	}
	if e.PropertyID("Color") != "emitter/Color" {
		t.Errorf("PropertyID() = %q", e.PropertyID("Color"))
	}
}

// TestNewEffect_Errors 测试非法名称和没有属性的类型
func TestNewEffect_Errors(t *testing.T) {
	table := loadTestTable(t)
	tests := []struct {
		name   string
		effect string
		kind   EffectKind
	}{
		{"空名称", "", KindEmitter},
		{"非法字符", "fire/smoke", KindEmitter},
		{"未知类型", "Fire", EffectKind("sound")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEffect(tt.effect, tt.kind, table); err == nil {
				t.Error("NewEffect() should fail")
			}
		})
	}
}

// TestEffect_PropertyWritesThrough 测试属性宿主直接修改效果数据
func TestEffect_PropertyWritesThrough(t *testing.T) {
	e, _ := NewEffect("Lamp", KindLight, loadTestTable(t))
	p, _ := e.Property("Range")
	p.ClearKeys()
	if err := p.Deserialize(&keyframe.PropertyData{
		Name: "Range", Type: keyframe.TypeFloat, AnimationType: keyframe.Animated,
		Keys: []keyframe.KeyData{{Time: 0.5, Value: []float64{3}}},
	}); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if got := e.Properties[0].Keys; len(got) != 1 || got[0].Value[0] != 3 {
		t.Errorf("effect data = %+v", got)
	}
}

// TestEffect_Validate 测试效果校验
func TestEffect_Validate(t *testing.T) {
	prop := func(name string) *keyframe.PropertyData {
		return &keyframe.PropertyData{Name: name, Type: keyframe.TypeFloat, AnimationType: keyframe.Animated}
	}
	tests := []struct {
		name    string
		effect  *Effect
		wantErr bool
	}{
		{"合法", &Effect{Name: "Fire", Kind: KindEmitter, Properties: []*keyframe.PropertyData{prop("A")}}, false},
		{"重复属性", &Effect{Name: "Fire", Kind: KindEmitter, Properties: []*keyframe.PropertyData{prop("A"), prop("A")}}, true},
		{"未知类型", &Effect{Name: "Fire", Kind: "sound"}, true},
		{"空属性", &Effect{Name: "Fire", Kind: KindLight, Properties: []*keyframe.PropertyData{nil}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.effect.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
