package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	twocaptcha "github.com/anatolykoptev/go-twocaptcha"
)

// app carries state shared by the subcommands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string

	// transport overrides the network client; set by tests.
	transport twocaptcha.Doer
}

// newRootCmd builds a fresh command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	return buildRootCmd(&app{v: viper.New()})
}

func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "twocaptcha",
		Short:         "Solve reCAPTCHA challenges through the 2captcha service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initializeConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./twocaptcha.yaml)")
	pf.String("api-key", "", "2captcha API key (env TWOCAPTCHA_API_KEY)")
	pf.String("base-url", "", "service base URL")
	pf.String("proxy-host", "", "proxy host")
	pf.Int("proxy-port", 0, "proxy port")
	pf.String("proxy-type", string(twocaptcha.ProxyHTTP), "proxy type: HTTP, SOCKS4 or SOCKS5")
	pf.String("proxy-login", "", "proxy login")
	pf.String("proxy-password", "", "proxy password (env TWOCAPTCHA_PROXY_PASSWORD)")
	pf.Duration("initial-delay", 0, "wait before the first poll (default 10s)")
	pf.Duration("poll-interval", 0, "wait between polls (default 10s)")
	pf.String("log-level", "info", "debug, info, warn or error")
	_ = a.v.BindPFlags(pf)

	root.AddCommand(newSolveCmd(a), newBalanceCmd(a), newReportCmd(a))
	return root
}

// initializeConfig reads in config file and ENV variables if set.
func (a *app) initializeConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("twocaptcha")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("TWOCAPTCHA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// solverConfig maps the merged flag/env/file settings onto a twocaptcha.Config.
func (a *app) solverConfig(logOut io.Writer) (twocaptcha.Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return twocaptcha.Config{}, fmt.Errorf("log level: %w", err)
	}

	cfg := twocaptcha.Config{
		APIKey:       a.v.GetString("api-key"),
		BaseURL:      a.v.GetString("base-url"),
		InitialDelay: a.v.GetDuration("initial-delay"),
		PollInterval: a.v.GetDuration("poll-interval"),
		Transport:    a.transport,
		Logger:       slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
	}
	if host := a.v.GetString("proxy-host"); host != "" {
		cfg.Proxy = &twocaptcha.ProxyConfig{
			Host: host,
			Port: a.v.GetInt("proxy-port"),
			Kind: twocaptcha.ProxyKind(strings.ToUpper(a.v.GetString("proxy-type"))),

			Login:    a.v.GetString("proxy-login"),
			Password: a.v.GetString("proxy-password"),
		}
	}
	return cfg, nil
}

func (a *app) solver(cmd *cobra.Command) (*twocaptcha.Solver, error) {
	cfg, err := a.solverConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return twocaptcha.NewSolver(cfg)
}
