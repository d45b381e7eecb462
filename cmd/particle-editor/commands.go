package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/app"
)

var (
	findQuery       string
	mirrorClipboard string
	windowScale     float64
)

var listCmd = &cobra.Command{
	Use:   "list [effect]",
	Short: "List saved effects, or the properties of an effect",
	Long: `Without an argument, list the names of all saved effects.
With an effect name, list its properties as "kind/Name  Type  1D|2D".

--find filters properties with a fuzzy match on their ID. Without an effect
it searches the whole property table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			if findQuery != "" {
				for _, id := range s.Table.Find(findQuery) {
					info, _ := s.Table.Get(id)
					fmt.Fprintf(out, "%s\t%s\t%s\n", id, info.Type, dimLabel(info.Is2D))
				}
				return nil
			}
			names := s.Store.Names()
			if len(names) == 0 {
				fmt.Fprintln(out, "No saved effects.")
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		effect, err := s.Store.Load(args[0])
		if err != nil {
			return err
		}
		// Find 按匹配度排序，这里只用它做过滤，输出保持效果中的顺序
		var matched []string
		if findQuery != "" {
			matched = s.Table.Find(findQuery)
		}
		for _, data := range effect.Properties {
			id := effect.PropertyID(data.Name)
			if findQuery != "" && !slices.Contains(matched, id) {
				continue
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%d keys\n", id, data.Type, dimLabel(data.Is2D()), len(data.Keys))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <effect> <property>",
	Short: "Print the keyframes of a property as YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		effect, err := s.Store.Load(args[0])
		if err != nil {
			return err
		}
		host, err := effect.Property(args[1])
		if err != nil {
			return err
		}
		data, err := keyframe.Encode(host.Data())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an effect from a YAML file",
	Long: `Import an effect from a YAML file written by export. An existing effect with
the same name is replaced; its previous version becomes the backup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		effect, err := s.Store.Import(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s, %d properties)\n", effect.Name, effect.Kind, len(effect.Properties))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <effect> <file>",
	Short: "Export an effect to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		if err := s.Store.Export(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], args[1])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <effect>",
	Short: "Swap an effect with its backup",
	Long: `Every save keeps the previous version of an effect as its backup. restore
replaces the effect with the backup; the replaced version becomes the new
backup, so running restore twice undoes it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		if _, err := s.Store.Restore(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from backup\n", args[0])
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <effect>",
	Short: "Remove an effect from the saved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		if err := s.Store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change editor settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		changed := false
		if cmd.Flags().Changed("mirror-clipboard") {
			enabled, err := strconv.ParseBool(mirrorClipboard)
			if err != nil {
				return fmt.Errorf("invalid --mirror-clipboard value %q: %w", mirrorClipboard, err)
			}
			s.Settings.SetMirrorClipboard(enabled)
			changed = true
		}
		if cmd.Flags().Changed("scale") {
			s.Settings.SetWindowScale(windowScale)
			changed = true
		}
		if changed {
			if err := s.Settings.Save(); err != nil {
				return err
			}
		}
		printSettings(cmd, s)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&findQuery, "find", "f", "", "Fuzzy filter for property IDs")
	settingsCmd.Flags().StringVar(&mirrorClipboard, "mirror-clipboard", "", "Also copy key values to the system clipboard (true/false)")
	settingsCmd.Flags().Float64Var(&windowScale, "scale", 1, "Window scale (1.0 - 3.0)")
}

func printSettings(cmd *cobra.Command, s *app.Services) {
	settings := s.Settings.GetSettings()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mirror-clipboard: %t\n", settings.MirrorClipboard)
	fmt.Fprintf(out, "scale: %g\n", settings.WindowScale)
	if settings.LastEffect != "" {
		fmt.Fprintf(out, "last opened: %s %s\n", settings.LastEffect, settings.LastProperty)
	}
}

func dimLabel(is2D bool) string {
	if is2D {
		return "2D"
	}
	return "1D"
}
