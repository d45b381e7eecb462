package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EditorSettings 编辑器的用户设置
type EditorSettings struct {
	// MirrorClipboard 复制关键帧值时同时写入系统剪贴板
	MirrorClipboard bool `yaml:"mirrorClipboard"`
	// LastEffect 上次打开的效果名，启动时没有指定效果则打开它
	LastEffect string `yaml:"lastEffect"`
	// LastProperty 上次编辑的属性名
	LastProperty string `yaml:"lastProperty"`
	// WindowScale 窗口相对逻辑分辨率的缩放 1.0 ~ 3.0
	WindowScale float64 `yaml:"windowScale"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EditorSettings {
	return &EditorSettings{
		MirrorClipboard: true,
		WindowScale:     1,
	}
}

// SettingsManager 设置管理器
// 负责编辑器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EditorSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不视为错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填默认值，旧版本设置文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.WindowScale = clampScale(loaded.WindowScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EditorSettings {
	return sm.settings
}

// SetMirrorClipboard 设置是否同步系统剪贴板
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetMirrorClipboard(enabled bool) {
	sm.settings.MirrorClipboard = enabled
}

// SetLastOpened 记录最近编辑的效果和属性
func (sm *SettingsManager) SetLastOpened(effect, property string) {
	sm.settings.LastEffect = effect
	sm.settings.LastProperty = property
}

// SetWindowScale 设置窗口缩放，限制在 1.0 ~ 3.0
func (sm *SettingsManager) SetWindowScale(scale float64) {
	sm.settings.WindowScale = clampScale(scale)
}

func clampScale(scale float64) float64 {
	if scale < 1 {
		return 1
	}
	if scale > 3 {
		return 3
	}
	return scale
}
