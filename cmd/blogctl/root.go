package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
)

type app struct {
	cfgFile string
	cfg     blog.Config
	module  *blog.Module
	out     io.Writer
	diOpts  []di.Option
}

func newRootCmd(out io.Writer, diOpts ...di.Option) *cobra.Command {
	a := &app{out: out, diOpts: diOpts}

	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Inspect and serve a Markdown blog corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./blog.yaml)")
	flags.String("content", "", "content root directory")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-provider", "", "logger provider (console or gologger)")

	root.AddCommand(
		a.postsCmd(),
		a.postCmd(),
		a.categoriesCmd(),
		a.tagsCmd(),
		a.statsCmd(),
		a.validateCmd(),
		a.serveCmd(),
	)
	return root
}

// initialize loads configuration from defaults, the config file, BLOG_*
// environment variables and flags, in increasing precedence, then builds
// the module.
func (a *app) initialize(cmd *cobra.Command) error {
	v := viper.New()
	setDefaults(v, blog.DefaultConfig())

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"content.root":     "content",
		"logging.level":    "log-level",
		"logging.provider": "log-provider",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg := blog.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	a.cfg = cfg

	module, err := blog.New(cfg, a.diOpts...)
	if err != nil {
		return err
	}
	a.module = module
	return nil
}

func setDefaults(v *viper.Viper, cfg blog.Config) {
	v.SetDefault("content.root", cfg.Content.Root)
	v.SetDefault("content.extension", cfg.Content.Extension)
	v.SetDefault("content.workers", cfg.Content.Workers)
	v.SetDefault("content.excerptlength", cfg.Content.ExcerptLength)
	v.SetDefault("content.wordsperminute", cfg.Content.WordsPerMinute)
	v.SetDefault("content.includehidden", cfg.Content.IncludeHidden)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.singleflight", cfg.Cache.SingleFlight)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hardwraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safemode", cfg.Markdown.SafeMode)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.addsource", cfg.Logging.AddSource)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.shutdowntimeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.namespace", cfg.Metrics.Namespace)
}
