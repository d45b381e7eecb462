package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/THDigi/ParticleEditor/pkg/app"
	"github.com/THDigi/ParticleEditor/pkg/config"
	"github.com/THDigi/ParticleEditor/pkg/game"
)

const cliTestTable = `
properties:
  emitter/Velocity:
    type: Float
    animation: Animated
    range: { min: 0, max: 100, default: [2] }
  emitter/Color:
    type: Vector4
    animation: Animated2D
    color: true
  light/Intensity:
    type: Float
    animation: Animated
`

// useMemoryServices 让命令使用只在内存中保存的服务，并预先创建效果 Sparks
func useMemoryServices(t *testing.T) *app.Services {
	t.Helper()
	table, err := config.ParsePropertyTable([]byte(cliTestTable))
	if err != nil {
		t.Fatalf("ParsePropertyTable() error = %v", err)
	}
	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatal(err)
	}
	store, err := game.NewEffectStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := &app.Services{
		EditorConfig: config.DefaultEditorConfig(),
		Table:        table,
		Settings:     settings,
		Store:        store,
	}
	if _, err := s.EnsureEffect("Sparks", game.KindEmitter); err != nil {
		t.Fatal(err)
	}

	original := openServices
	openServices = func() (*app.Services, error) { return s, nil }
	t.Cleanup(func() {
		openServices = original
		findQuery = ""
	})
	return s
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// TestListCommand 测试列出效果和属性
func TestListCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{name: "效果列表", args: []string{"list"}, want: []string{"Sparks"}},
		{
			name:    "效果的属性",
			args:    []string{"list", "Sparks"},
			want:    []string{"emitter/Velocity\tFloat\t1D", "emitter/Color\tVector4\t2D"},
			notWant: []string{"light/Intensity"},
		},
		{
			name:    "模糊过滤效果属性",
			args:    []string{"list", "Sparks", "--find", "colr"},
			want:    []string{"emitter/Color"},
			notWant: []string{"emitter/Velocity"},
		},
		{
			name:    "搜索整个元数据表",
			args:    []string{"list", "--find", "intens"},
			want:    []string{"light/Intensity\tFloat\t1D"},
			notWant: []string{"Sparks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMemoryServices(t)
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

// TestShowCommand 测试以 YAML 输出属性关键帧
func TestShowCommand(t *testing.T) {
	useMemoryServices(t)

	out, err := execute(t, "show", "Sparks", "Velocity")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, w := range []string{"name: Velocity", "type: Float", "animationType: Animated", "value: [2]"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	if _, err := execute(t, "show", "Sparks", "Missing"); err == nil {
		t.Error("unknown property should fail")
	}
	if _, err := execute(t, "show", "Nothing", "Velocity"); err == nil {
		t.Error("unknown effect should fail")
	}
}

// TestExportImportCommands 测试导出后删除再导入
func TestExportImportCommands(t *testing.T) {
	s := useMemoryServices(t)
	path := filepath.Join(t.TempDir(), "sparks.yaml")

	if _, err := execute(t, "export", "Sparks", path); err != nil {
		t.Fatalf("export error = %v", err)
	}
	if _, err := execute(t, "remove", "Sparks"); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	if s.Store.Has("Sparks") {
		t.Fatal("Sparks should be removed")
	}

	out, err := execute(t, "import", path)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported Sparks (emitter, 2 properties)") {
		t.Errorf("import output = %q", out)
	}
	if !s.Store.Has("Sparks") {
		t.Error("Sparks should be stored again")
	}
}

// TestSettingsCommand 测试修改设置
func TestSettingsCommand(t *testing.T) {
	s := useMemoryServices(t)

	out, err := execute(t, "settings", "--mirror-clipboard=false", "--scale", "2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := s.Settings.GetSettings()
	if got.MirrorClipboard || got.WindowScale != 2 {
		t.Errorf("settings = %+v", got)
	}
	if !strings.Contains(out, "mirror-clipboard: false") || !strings.Contains(out, "scale: 2") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "settings", "--mirror-clipboard=maybe"); err == nil {
		t.Error("invalid bool should fail")
	}
}
