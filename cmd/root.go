package cmd

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ri-Verma/portfolio/internal/config"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfgFile string
	debug   bool
	cfg     config.Config
	v       *viper.Viper
	log     *logrus.Logger
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Personal portfolio site",
		Long: `portfolio serves a single-page personal portfolio: an about panel, project
and certification carousels and a contact form, with scroll effects driven
by per-visitor view sessions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initializeConfig(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newContentCmd(a),
	)
	return rootCmd
}

func (a *app) initializeConfig(cmd *cobra.Command) error {
	a.v = viper.New()
	for _, name := range []string{"debug", "addr", "content", "watch"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(name, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		a.log.SetLevel(logrus.DebugLevel)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.WithField("file", used).Debug("using config file")
	}
	return nil
}
