// spincube - an interactive reflective cube over a procedural sky.
//
// Controls:
//
//	Drag        - Spin the cube; release to throw it
//	Click       - Bounce
//	Wheel       - Zoom
//	Esc         - Toggle the settings terminal ("cmd help" lists commands)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spincube/internal/config"
	"spincube/internal/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spincube",
		Short:         "Interactive spinning cube",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), settingsCmd())
	return root
}

func runCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the cube window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.settings, "settings", config.SettingsPath, "Saved settings file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.dotenv, "env", ".env", "Dotenv file with SPINCUBE_* overrides")
	cmd.Flags().StringVar(&opts.spinModel, "spin-model", "", "Spin model: spring, inertia or analytic (overrides settings)")
	cmd.Flags().StringVar(&opts.logPath, "log", logger.DefaultPath, "Log file")
	cmd.Flags().StringVar(&opts.font, "font", "Inter", "Overlay font family searched under assets/fonts")
	cmd.Flags().Int32Var(&opts.fps, "fps", 60, "Target frame rate; the spin tuning assumes 60")
	return cmd
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and validate saved settings",
	}

	var path, dotenv, format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings after files and environment are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, errs := config.LoadAll(path, dotenv)
			for _, err := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return printSettings(cmd, cfg, format)
		},
	}
	show.Flags().StringVar(&path, "settings", config.SettingsPath, "Saved settings file")
	show.Flags().StringVar(&dotenv, "env", ".env", "Dotenv file")
	show.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	var defaultsFormat string
	defaults := &cobra.Command{
		Use:   "defaults",
		Short: "Print the compiled-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSettings(cmd, config.Default(), defaultsFormat)
		},
	}
	defaults.Flags().StringVar(&defaultsFormat, "format", "json", "Output format: json or yaml")

	validate := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a settings file key by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, errs := config.Load(args[0])
			for _, err := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%s: %d problem(s)", args[0], len(errs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, defaults, validate)
	return cmd
}

func printSettings(cmd *cobra.Command, cfg *config.Config, format string) error {
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}
