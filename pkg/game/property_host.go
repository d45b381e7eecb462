package game

import (
	"fmt"
	"sort"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

// Property 是一个粒子效果中单个动画属性的宿主
//
// 实现 editor.PropertyHost：编辑会话从这里读取关键帧，应用时先清空再写回。
// 写入时按时间有序插入，时间相同的关键帧后写入的生效。
type Property struct {
	data *keyframe.PropertyData

	// OnCommit 每次 Deserialize 成功后调用，用于持久化所属效果
	OnCommit func()
}

// NewProperty 包装一份属性数据；data 由 Property 直接修改
func NewProperty(data *keyframe.PropertyData) *Property {
	return &Property{data: data}
}

// Name returns the property name.
func (p *Property) Name() string { return p.data.Name }

// Data returns the live data. Callers must not keep references across
// Deserialize calls.
func (p *Property) Data() *keyframe.PropertyData { return p.data }

// Serialize 返回属性数据的深拷贝
func (p *Property) Serialize() (*keyframe.PropertyData, error) {
	out := *p.data
	out.Keys = cloneKeys(p.data.Keys)
	return &out, nil
}

// Deserialize 把数据中的关键帧插入属性
//
// 参数:
//
//	data - 名称、值类型和动画类型必须与属性一致
//
// 返回:
//
//	error - 数据格式错误或与属性不匹配时返回错误，此时属性不被修改
func (p *Property) Deserialize(data *keyframe.PropertyData) error {
	if data == nil {
		return fmt.Errorf("property %s: nil data", p.data.Name)
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Type != p.data.Type {
		return fmt.Errorf("property %s: type %s does not match %s", p.data.Name, data.Type, p.data.Type)
	}
	if data.AnimationType != p.data.AnimationType {
		return fmt.Errorf("property %s: animation type %s does not match %s",
			p.data.Name, data.AnimationType, p.data.AnimationType)
	}

	keys := p.data.Keys
	for _, k := range data.Keys {
		outer := keyframe.KeyData{Time: k.Time, Value: append([]float64(nil), k.Value...)}
		for _, inner := range k.Keys {
			outer.Keys = insertLastWins(outer.Keys, keyframe.KeyData{
				Time:  inner.Time,
				Value: append([]float64(nil), inner.Value...),
			})
		}
		if p.data.AnimationType == keyframe.Animated2D && outer.Keys == nil {
			outer.Keys = []keyframe.KeyData{}
		}
		keys = insertLastWins(keys, outer)
	}
	p.data.Keys = keys

	if p.OnCommit != nil {
		p.OnCommit()
	}
	return nil
}

// ClearKeys removes every key.
func (p *Property) ClearKeys() {
	p.data.Keys = nil
}

// insertLastWins 按时间有序插入；已有相同时间的关键帧时替换它
func insertLastWins(keys []keyframe.KeyData, k keyframe.KeyData) []keyframe.KeyData {
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time >= k.Time })
	if i < len(keys) && keys[i].Time == k.Time {
		keys[i] = k
		return keys
	}
	keys = append(keys, keyframe.KeyData{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	return keys
}

func cloneKeys(keys []keyframe.KeyData) []keyframe.KeyData {
	if keys == nil {
		return nil
	}
	out := make([]keyframe.KeyData, len(keys))
	for i, k := range keys {
		out[i] = keyframe.KeyData{
			Time:  k.Time,
			Value: append([]float64(nil), k.Value...),
			Keys:  cloneKeys(k.Keys),
		}
	}
	return out
}
