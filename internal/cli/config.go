package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/contactbook/internal/config"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  exactArgs(0, "contactbook config show"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(e.cfg)
			if err != nil {
				return fmt.Errorf("marshal: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  exactArgs(0, "contactbook config init [--force]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.configPath
			if path == "" {
				path = filepath.Join(e.cfg.DataDir, config.FileName)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usagef("%s exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := e.cfg.Save(path); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
