package editor

import (
	"errors"
	"math"
	"sort"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/config"
)

// fakeHost 模拟属性宿主：按时间排序插入，时间相同时后写入的关键帧生效
type fakeHost struct {
	data *keyframe.PropertyData

	clears         int
	deserializes   int
	deserializeErr error
}

func newFakeHost(name string, typ keyframe.ValueType, anim keyframe.AnimationType, keys ...keyframe.KeyData) *fakeHost {
	return &fakeHost{data: &keyframe.PropertyData{Name: name, Type: typ, AnimationType: anim, Keys: keys}}
}

func (h *fakeHost) Serialize() (*keyframe.PropertyData, error) {
	out := *h.data
	out.Keys = cloneKeyData(h.data.Keys)
	return &out, nil
}

func (h *fakeHost) Deserialize(data *keyframe.PropertyData) error {
	h.deserializes++
	if h.deserializeErr != nil {
		err := h.deserializeErr
		h.deserializeErr = nil
		// 失败前写入一半数据
		if len(data.Keys) > 0 {
			h.data.Keys = insertLastWins(h.data.Keys, data.Keys[0])
		}
		return err
	}
	for _, k := range data.Keys {
		outer := keyframe.KeyData{Time: k.Time, Value: append([]float64(nil), k.Value...)}
		for _, inner := range k.Keys {
			outer.Keys = insertLastWins(outer.Keys, inner)
		}
		h.data.Keys = insertLastWins(h.data.Keys, outer)
	}
	return nil
}

func (h *fakeHost) ClearKeys() {
	h.clears++
	h.data.Keys = nil
}

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

func cloneKeyData(keys []keyframe.KeyData) []keyframe.KeyData {
	if keys == nil {
		return nil
	}
	out := make([]keyframe.KeyData, len(keys))
	for i, k := range keys {
		out[i] = keyframe.KeyData{
			Time:  k.Time,
			Value: append([]float64(nil), k.Value...),
			Keys:  cloneKeyData(k.Keys),
		}
	}
	return out
}

var errHostBroken = errors.New("host broken")

// recorder 记录所有通知
type recorder struct {
	texts  []string
	levels []Level
}

func (r *recorder) Notify(level Level, text string, seconds float64) {
	r.texts = append(r.texts, text)
	r.levels = append(r.levels, level)
}

func (r *recorder) last() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

func floatInfo(req1D int) *config.PropertyInfo {
	return &config.PropertyInfo{
		ID:                   "test/Float",
		Name:                 "Float",
		Type:                 keyframe.TypeFloat,
		RequiredKeys1D:       req1D,
		RequiredKeys1DReason: config.DefaultRequiredKeysReason,
		Range:                config.ValueRange{Min: -1, Max: 1, Rounding: 2, InputRounding: 6},
	}
}

func colorInfo2D(req1D, req2D int) *config.PropertyInfo {
	return &config.PropertyInfo{
		ID:             "test/Color",
		Name:           "Color",
		Type:           keyframe.TypeVector4,
		Is2D:           true,
		Color:          true,
		RequiredKeys1D: req1D,
		RequiredKeys2D: req2D,
		Range:          config.ValueRange{Min: 0, Max: 1, Rounding: 2, InputRounding: 6},
	}
}

func floatList(pairs ...float64) *keyframe.List {
	l := keyframe.MustNewList(keyframe.TypeFloat)
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, err := l.Add(keyframe.Key{Time: pairs[i], Value: keyframe.Scalar(pairs[i+1])}); err != nil {
			panic(err)
		}
	}
	return l
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
