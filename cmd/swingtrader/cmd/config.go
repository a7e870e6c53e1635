package cmd

import (
	"fmt"

	"github.com/rustyeddy/swingtrader/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and generate configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE:  showConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initConfig,
}

var configPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configShowCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML or JSON)")
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "swingtrader.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Default().SaveToFile(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote default config to %s\n", path)
	return nil
}
