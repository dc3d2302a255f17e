package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/miketth/hyprkeys/pkg/config"
	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/hyprland"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/keys"
	"codeberg.org/miketth/hyprkeys/pkg/launcher"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

var errUnknownLauncher = errors.New("unknown launcher")

func newActivateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <launcher>",
		Short: "Focus the launcher's application, starting it if it has no window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := hyprkeys.DetectPlatform(os.Getenv); err != nil {
				return err
			}

			log, err := newLogger(opts.debug)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("find own executable: %w", err)
			}
			hyprctl, err := hyprland.NewHyprctl(selfCommand(exe, opts.configPath))
			if err != nil {
				return fmt.Errorf("connect hyprctl: %w", err)
			}

			_, err = activate(cfg, args[0], launcher.NewResolver(hyprctl, hyprctl, log))
			return err
		},
	}
}

func activate(cfg config.Config, name string, resolver *launcher.Resolver) (window.Handle, error) {
	d, ok := cfg.Launcher(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", errUnknownLauncher, name)
	}

	action, err := resolver.Resolve(d)
	if err != nil {
		return "", fmt.Errorf("resolve launcher: %w", err)
	}
	return action()
}

func newKeymapCmd(opts *options) *cobra.Command {
	var transliterate bool

	cmd := &cobra.Command{
		Use:   "keymap <app>",
		Short: "Print the chord table built for an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadAppTable(opts, keymap.AppID(args[0]), transliterate)
			if err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), table, "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&transliterate, "transliterate", false, "show the table as installed under the target layout")

	return cmd
}

func newPressCmd(opts *options) *cobra.Command {
	var transliterate bool

	cmd := &cobra.Command{
		Use:   "press <app> <chord>...",
		Short: "Show what a sequence of chords does in an application",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadAppTable(opts, keymap.AppID(args[0]), transliterate)
			if err != nil {
				return err
			}
			return press(cmd.OutOrStdout(), table, args[1:])
		},
	}

	cmd.Flags().BoolVar(&transliterate, "transliterate", false, "press against the table as installed under the target layout")

	return cmd
}

func newTranslateCmd(opts *options) *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "translate <key>...",
		Short: "Move keys or chords to the same physical position in the target layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			pair := cfg.Pair
			if reverse {
				pair = pair.Reverse()
			}

			for _, arg := range args {
				chord, err := keys.ParseChord(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pair.TranslateChord(chord))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "translate from the target layout back to the source layout")

	return cmd
}

func loadAppTable(opts *options, app keymap.AppID, transliterate bool) (keymap.Table, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return keymap.Table{}, err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return keymap.Table{}, err
	}

	mode := keymap.Native
	if transliterate {
		mode = keymap.Transliterated
	}
	return appTable(registry, app, mode)
}

func printTable(w io.Writer, t keymap.Table, indent string) {
	for _, e := range t.Entries() {
		fmt.Fprintf(w, "%s%s\t%s\n", indent, e.Input, e.Output)
		if ms, ok := e.Output.(*keymap.MultiStroke); ok {
			printTable(w, ms.Table, indent+"  ")
		}
	}
}

func press(w io.Writer, t keymap.Table, chords []string) error {
	d := keymap.NewDispatcher(t)
	for _, arg := range chords {
		chord, err := keys.ParseChord(arg)
		if err != nil {
			return err
		}

		res := d.Press(chord)
		var what string
		switch {
		case res.Pending:
			what = "waiting after " + res.Output.String()
		case res.Matched:
			what = res.Output.String()
		case res.Cancelled:
			what = "cancelled"
		default:
			what = "passed through"
		}
		fmt.Fprintf(w, "%s\t%s\n", chord, what)
	}
	return nil
}
