package app

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/THDigi/ParticleEditor/pkg/config"
	"github.com/THDigi/ParticleEditor/pkg/game"
)

// AppName gdata 存储目录名
const AppName = "particle-editor"

// DefaultEffectName 没有指定也没有最近记录时打开的效果
const DefaultEffectName = "Default"

// Services 编辑器窗口和命令行子命令共用的服务
type Services struct {
	EditorConfig *config.EditorConfig
	Table        *config.PropertyTable
	Settings     *game.SettingsManager
	Store        *game.EffectStore
}

// OpenServices 加载内置数据并打开用户存储
//
// gdata 打开失败时进入降级模式：设置和效果只保存在内存中。
//
// 返回:
//
//	*Services - 共享服务
//	error - 内置数据或效果索引无法读取时返回错误
func OpenServices() (*Services, error) {
	editorCfg, err := config.LoadEditorConfig(config.EditorConfigPath)
	if err != nil {
		return nil, err
	}
	table, err := config.LoadPropertyTable(config.PropertiesConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Services] 属性元数据 %d 条", len(table.IDs()))

	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[Services] Warning: gdata 不可用，数据不会保存: %v", err)
		manager = nil
	}

	settings, err := game.NewSettingsManager(manager)
	if err != nil {
		return nil, err
	}
	store, err := game.NewEffectStore(manager)
	if err != nil {
		return nil, err
	}

	return &Services{
		EditorConfig: editorCfg,
		Table:        table,
		Settings:     settings,
		Store:        store,
	}, nil
}

// EnsureEffect 读取效果，不存在时按元数据表创建默认效果并保存
//
// 参数:
//
//	name - 效果名
//	kind - 新建时使用的类型，为空时为 emitter
func (s *Services) EnsureEffect(name string, kind game.EffectKind) (*game.Effect, error) {
	if s.Store.Has(name) {
		return s.Store.Load(name)
	}
	if kind == "" {
		kind = game.KindEmitter
	}
	effect, err := game.NewEffect(name, kind, s.Table)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Save(effect); err != nil {
		return nil, fmt.Errorf("failed to create effect %s: %w", name, err)
	}
	log.Printf("[Services] 新建效果 %s (%s)", name, kind)
	return effect, nil
}
