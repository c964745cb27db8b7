package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/relay/pkg/config"
	"github.com/arthur-debert/relay/pkg/paths"
)

func newGenConfigCmd() *cobra.Command {
	var effective bool
	var write bool

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.DefaultConfigContent()

			if effective {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf(MsgErrLoadConfig, err)
				}
				rendered, err := toml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to render config: %w", err)
				}
				content = string(rendered)
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := filepath.Join(paths.ConfigDir(), paths.ConfigFileName+".toml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
