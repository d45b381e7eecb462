package game

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	effectsObject  = "effects"
	effectsIndex   = "index"
	backupsObject  = "backups"
	effectFileMode = 0644
)

// EffectStore 粒子效果存储
//
// 效果以 YAML 保存在 gdata 中，每个效果一个属性；另有一个索引属性记录效果名列表。
// 覆盖保存前旧版本写入备份，可以用 Restore 取回。
// gdataManager 为 nil 时进入降级模式，效果只保存在内存中。
type EffectStore struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
	names        []string
}

// NewEffectStore 创建效果存储并读取索引
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *EffectStore: 效果存储
//   - error: 索引存在但无法解析时返回错误
func NewEffectStore(gdataManager *gdata.Manager) (*EffectStore, error) {
	s := &EffectStore{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EffectStore) loadIndex() error {
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(effectsObject, effectsIndex) {
		return nil
	}
	data, err := s.gdataManager.LoadObjectProp(effectsObject, effectsIndex)
	if err != nil {
		return fmt.Errorf("failed to load effect index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("failed to parse effect index: %w", err)
	}
	slices.Sort(names)
	s.names = slices.Compact(names)
	return nil
}

func (s *EffectStore) saveIndex() error {
	data, err := yaml.Marshal(s.names)
	if err != nil {
		return fmt.Errorf("failed to marshal effect index: %w", err)
	}
	return s.write(effectsObject, effectsIndex, data)
}

// 对象属性的读写，降级模式下使用内存
func (s *EffectStore) write(object, prop string, data []byte) error {
	if s.gdataManager == nil {
		s.memory[object+"/"+prop] = data
		return nil
	}
	if err := s.gdataManager.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, prop, err)
	}
	return nil
}

func (s *EffectStore) read(object, prop string) ([]byte, bool, error) {
	if s.gdataManager == nil {
		data, ok := s.memory[object+"/"+prop]
		return data, ok, nil
	}
	if !s.gdataManager.ObjectPropExists(object, prop) {
		return nil, false, nil
	}
	data, err := s.gdataManager.LoadObjectProp(object, prop)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s/%s: %w", object, prop, err)
	}
	return data, true, nil
}

// Names 返回已保存的效果名（有序）
func (s *EffectStore) Names() []string {
	return slices.Clone(s.names)
}

// Has reports whether an effect with the given name is stored.
func (s *EffectStore) Has(name string) bool {
	_, found := slices.BinarySearch(s.names, name)
	return found
}

// Load 读取效果
//
// 返回：
//   - *Effect: 效果
//   - error: 效果不存在或数据损坏时返回错误
func (s *EffectStore) Load(name string) (*Effect, error) {
	if !s.Has(name) {
		return nil, fmt.Errorf("effect %q not found", name)
	}
	data, ok, err := s.read(effectsObject, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("effect %q is listed but has no data", name)
	}
	return decodeEffect(data)
}

// Save 保存效果；已存在的旧版本先写入备份
func (s *EffectStore) Save(e *Effect) error {
	if err := e.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal effect %s: %w", e.Name, err)
	}

	if old, ok, err := s.read(effectsObject, e.Name); err != nil {
		return err
	} else if ok {
		if err := s.write(backupsObject, e.Name, old); err != nil {
			return err
		}
	}

	if err := s.write(effectsObject, e.Name, data); err != nil {
		return err
	}
	if !s.Has(e.Name) {
		s.names = append(s.names, e.Name)
		slices.Sort(s.names)
		if err := s.saveIndex(); err != nil {
			return err
		}
	}
	log.Printf("[EffectStore] 已保存效果 %s", e.Name)
	return nil
}

// Restore 用备份替换当前效果，当前版本成为新的备份
func (s *EffectStore) Restore(name string) (*Effect, error) {
	backup, ok, err := s.read(backupsObject, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("effect %q has no backup", name)
	}
	e, err := decodeEffect(backup)
	if err != nil {
		return nil, fmt.Errorf("backup of %q: %w", name, err)
	}
	if err := s.Save(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Remove 从索引中移除效果；数据保留在存储中，再次保存同名效果时成为备份
func (s *EffectStore) Remove(name string) error {
	i, found := slices.BinarySearch(s.names, name)
	if !found {
		return fmt.Errorf("effect %q not found", name)
	}
	s.names = slices.Delete(s.names, i, i+1)
	return s.saveIndex()
}

// Import 从 YAML 文件导入效果并保存
func (s *EffectStore) Import(path string) (*Effect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect file: %w", err)
	}
	e, err := decodeEffect(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Save(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Export 把效果写入 YAML 文件
func (s *EffectStore) Export(name, path string) error {
	e, err := s.Load(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal effect %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, effectFileMode); err != nil {
		return fmt.Errorf("failed to write effect file: %w", err)
	}
	return nil
}

func decodeEffect(data []byte) (*Effect, error) {
	var e Effect
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse effect: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
