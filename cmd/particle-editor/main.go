// particle-editor 粒子效果关键帧编辑器
//
// 不带子命令时打开编辑窗口：
//
//	particle-editor [effect] [property]
//
// 其他子命令在终端中查看、导入导出已保存的效果。
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/THDigi/ParticleEditor/pkg/app"
	"github.com/THDigi/ParticleEditor/pkg/embedded"
	"github.com/THDigi/ParticleEditor/pkg/game"
)

var (
	verbose bool
	dataDir string
	kind    string
)

// openServices 可在测试中替换
var openServices = app.OpenServices

var rootCmd = &cobra.Command{
	Use:   "particle-editor [effect] [property]",
	Short: "Keyframe editor for particle effect properties",
	Long: `particle-editor opens a window for editing the animated properties of a
particle effect. Without a property the window lists all properties of the
effect; without an effect the last edited effect is opened.

Effects are stored in the user data directory. Use the subcommands to list,
show, import and export them from the terminal.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if dataDir != "" {
			embedded.Init(os.DirFS(dataDir))
		}
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.Config{
			Verbose: verbose,
			Kind:    game.EffectKind(kind),
		}
		if len(args) > 0 {
			cfg.Effect = args[0]
		}
		if len(args) > 1 {
			cfg.Property = args[1]
		}
		return runEditor(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print log output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Directory containing a data/ folder that replaces the built-in data")
	rootCmd.Flags().StringVarP(&kind, "kind", "k", string(game.KindEmitter), "Kind of a newly created effect (emitter or light)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(settingsCmd)
}

// runEditor 打开编辑窗口，直到窗口关闭
func runEditor(cfg app.Config) error {
	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先让编辑场景确认未应用的修改
	ebiten.SetWindowClosingHandled(true)

	return ebiten.RunGame(a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
