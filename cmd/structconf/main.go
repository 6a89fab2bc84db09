package main

import (
	"log/slog"
	"os"

	"github.com/structconf/structconf"
	"github.com/structconf/structconf/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	root := newRootCmd()

	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "structconf",
		Short:         "Compile configuration and feature schemas into Go source",
		Version:       structconf.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config := logging.LoggerConfig{
				Level:  viper.GetString("log_level"),
				Format: viper.GetString("log_format"),
			}
			slog.SetDefault(logging.NewLogger(config, cmd.ErrOrStderr()))
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "json", "log format: json or text")

	viper.SetEnvPrefix("STRUCTCONF")
	viper.AutomaticEnv()

	bindFlag("log_level", root, "log-level")
	bindFlag("log_format", root, "log-format")

	root.AddCommand(newGenerateCmd())

	return root
}

func bindFlag(key string, cmd *cobra.Command, flag string) {
	err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
	if err != nil {
		panic(err)
	}
}
