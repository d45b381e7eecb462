package config

import (
	"testing"
	"testing/fstest"

	"github.com/THDigi/ParticleEditor/pkg/embedded"
)

func TestLoadEditorConfig(t *testing.T) {
	embedded.Init(nil)

	t.Run("内置配置与默认值一致", func(t *testing.T) {
		cfg, err := LoadEditorConfig(EditorConfigPath)
		if err != nil {
			t.Fatalf("LoadEditorConfig failed: %v", err)
		}
		if *cfg != *DefaultEditorConfig() {
			t.Errorf("built-in config = %+v, want %+v", *cfg, *DefaultEditorConfig())
		}
	})

	t.Run("部分覆盖", func(t *testing.T) {
		defer embedded.Init(nil)
		embedded.Init(fstest.MapFS{
			"data/editor.yaml": &fstest.MapFile{Data: []byte("timeline:\n  tolerance: 0.05\n")},
		})
		cfg, err := LoadEditorConfig(EditorConfigPath)
		if err != nil {
			t.Fatalf("LoadEditorConfig failed: %v", err)
		}
		if cfg.Timeline.Tolerance != 0.05 {
			t.Errorf("Tolerance = %v, want 0.05", cfg.Timeline.Tolerance)
		}
		if cfg.Window.Width != 1280 || cfg.NumberBox.DragScale != 7 {
			t.Errorf("unset fields should keep defaults: %+v", cfg)
		}
	})
}

func TestValidateEditorConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EditorConfig)
	}{
		{"窗口尺寸为零", func(c *EditorConfig) { c.Window.Width = 0 }},
		{"容差为零", func(c *EditorConfig) { c.Timeline.Tolerance = 0 }},
		{"容差过大", func(c *EditorConfig) { c.Timeline.Tolerance = 0.5 }},
		{"负留白", func(c *EditorConfig) { c.Timeline.InsideOffset = -1 }},
		{"拖动比例为零", func(c *EditorConfig) { c.NumberBox.DragScale = 0 }},
		{"通知时长为零", func(c *EditorConfig) { c.Notification.Seconds = 0 }},
		{"外层间隔为零", func(c *EditorConfig) { c.NewOuterKeySpacing = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEditorConfig()
			tt.mutate(cfg)
			if err := validateEditorConfig(cfg); err == nil {
				t.Error("validateEditorConfig should fail")
			}
		})
	}

	if err := validateEditorConfig(DefaultEditorConfig()); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}
