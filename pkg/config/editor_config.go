package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/THDigi/ParticleEditor/pkg/embedded"
)

// EditorConfigPath 内置编辑器参数路径
const EditorConfigPath = "data/editor.yaml"

// WindowConfig 窗口参数
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TimelineConfig 时间轴控件参数
type TimelineConfig struct {
	Tolerance    float64 `yaml:"tolerance"`    // 命中容差（轴长比例）
	InsideOffset float64 `yaml:"insideOffset"` // 两端留白（像素）
	Height       float64 `yaml:"height"`       // 控件高度（像素）
	KeyWidth     float64 `yaml:"keyWidth"`     // 关键帧宽度（像素）
}

// NumberBoxConfig 数字框拖动参数
type NumberBoxConfig struct {
	DragThreshold float64 `yaml:"dragThreshold"`
	DragScale     float64 `yaml:"dragScale"`
}

// NotificationConfig 通知显示参数
type NotificationConfig struct {
	Seconds     float64 `yaml:"seconds"`
	FadeSeconds float64 `yaml:"fadeSeconds"`
	MaxVisible  int     `yaml:"maxVisible"`
}

// EditorConfig 编辑器参数
type EditorConfig struct {
	Window             WindowConfig       `yaml:"window"`
	Timeline           TimelineConfig     `yaml:"timeline"`
	NumberBox          NumberBoxConfig    `yaml:"numberBox"`
	Notification       NotificationConfig `yaml:"notification"`
	NewOuterKeySpacing float64            `yaml:"newOuterKeySpacing"`
}

// DefaultEditorConfig 返回内置默认参数（与 data/editor.yaml 一致）
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		Window:             WindowConfig{Width: 1280, Height: 720, Title: "Particle Property Editor"},
		Timeline:           TimelineConfig{Tolerance: 0.02, InsideOffset: 12, Height: 38, KeyWidth: 10},
		NumberBox:          NumberBoxConfig{DragThreshold: 0.02, DragScale: 7},
		Notification:       NotificationConfig{Seconds: 3, FadeSeconds: 0.5, MaxVisible: 5},
		NewOuterKeySpacing: 5,
	}
}

// LoadEditorConfig 从 YAML 文件加载编辑器参数
// 文件中未出现的字段保留默认值
//
// 参数：
//
//	filepath - 配置文件路径（以 "data/" 开头）
//
// 返回：
//
//	*EditorConfig - 解析后的参数
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadEditorConfig(filepath string) (*EditorConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config %s: %w", filepath, err)
	}

	cfg := DefaultEditorConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML from %s: %w", filepath, err)
	}

	if err := validateEditorConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid editor config in %s: %w", filepath, err)
	}

	return cfg, nil
}

// validateEditorConfig 验证编辑器参数
func validateEditorConfig(cfg *EditorConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Timeline.Tolerance <= 0 || cfg.Timeline.Tolerance >= 0.5 {
		return fmt.Errorf("timeline tolerance must be in (0, 0.5), got %v", cfg.Timeline.Tolerance)
	}
	if cfg.Timeline.InsideOffset < 0 {
		return fmt.Errorf("timeline insideOffset cannot be negative, got %v", cfg.Timeline.InsideOffset)
	}
	if cfg.Timeline.Height <= 0 || cfg.Timeline.KeyWidth <= 0 {
		return fmt.Errorf("timeline height and keyWidth must be positive")
	}
	if cfg.NumberBox.DragThreshold < 0 {
		return fmt.Errorf("numberBox dragThreshold cannot be negative, got %v", cfg.NumberBox.DragThreshold)
	}
	if cfg.NumberBox.DragScale <= 0 {
		return fmt.Errorf("numberBox dragScale must be positive, got %v", cfg.NumberBox.DragScale)
	}
	if cfg.Notification.Seconds <= 0 {
		return fmt.Errorf("notification seconds must be positive, got %v", cfg.Notification.Seconds)
	}
	if cfg.Notification.MaxVisible <= 0 {
		return fmt.Errorf("notification maxVisible must be positive, got %d", cfg.Notification.MaxVisible)
	}
	if cfg.NewOuterKeySpacing <= 0 {
		return fmt.Errorf("newOuterKeySpacing must be positive, got %v", cfg.NewOuterKeySpacing)
	}
	return nil
}
