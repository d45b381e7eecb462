package editor

import "github.com/THDigi/ParticleEditor/internal/keyframe"

// PropertyHost owns the live property. The session only touches it when
// loading and on Apply.
//
// ClearKeys must be called before Deserialize when re-applying so stale
// keys do not accumulate. Hosts keep the last inserted key when two keys
// share a time.
type PropertyHost interface {
	Serialize() (*keyframe.PropertyData, error)
	Deserialize(data *keyframe.PropertyData) error
	ClearKeys()
}
