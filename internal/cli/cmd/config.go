package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jebstuart/TimeoutOverride/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the merged configuration after defaults, the config file, and environment variables are applied.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long:  `Creates the default config file (and its JSON schema) in the XDG config directory. Existing files are never overwritten.`,
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	if path := app.Manager.ConfigFile(); path != "" {
		fmt.Printf("# %s\n", path)
	} else {
		fmt.Println("# no config file found, showing defaults")
	}

	out, err := yaml.Marshal(app.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if err := app.Manager.WriteDefaultConfig(); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	if path := app.Manager.ConfigFile(); path != "" {
		fmt.Printf("config file at %s\n", path)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		fmt.Printf("default config written to %s\n", dir)
	}
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	schema, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Println(string(schema))
	return nil
}
