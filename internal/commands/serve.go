package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/mt940convert/internal/buildinfo"
	"github.com/cleared-dev/mt940convert/internal/config"
	"github.com/cleared-dev/mt940convert/internal/logger"
	"github.com/cleared-dev/mt940convert/internal/mt940"
	"github.com/cleared-dev/mt940convert/internal/server"
)

func newServeCommand() *cobra.Command {
	var cfgPath string
	var envFile string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web upload interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cfgPath, envFile, addr)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			srv, err := server.New(cfg, log, buildinfo.Version)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with MT940_* overrides")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")

	return cmd
}

// loadServeConfig layers defaults, the YAML file, the dotenv file, the
// process environment and the --addr flag, in that order.
func loadServeConfig(cfgPath, envFile, addr string) (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := config.Default()
	if cfgPath == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			cfgPath = config.DefaultFile
		}
	}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(mt940.DefaultRegistry().Names()); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
