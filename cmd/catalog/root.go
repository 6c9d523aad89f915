package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sternrassler/vod-catalog-client/pkg/client"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/logging"
	"github.com/Sternrassler/vod-catalog-client/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Each is also read from CATALOG_<KEY> with dashes as underscores.
const (
	keyBaseURL   = "base-url"
	keyUserAgent = "user-agent"
	keyTimeout   = "timeout"
	keyLocale    = "locale"
	keyAudio     = "audio"
	keyToken     = "token"
	keyRedisURL  = "redis-url"
	keyLogLevel  = "log-level"
	keyLogPretty = "log-pretty"
	keyPageSize  = "page-size"
)

const defaultUserAgent = "vod-catalog-client/0.1.0"

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse and search the video catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(v.GetString(keyLogLevel))
			if err != nil {
				return err
			}
			logging.Setup(logging.Config{
				Level:  level,
				Pretty: v.GetBool(keyLogPretty),
				Output: os.Stderr,
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyBaseURL, client.DefaultBaseURL, "catalog API base URL")
	flags.String(keyUserAgent, defaultUserAgent, "User-Agent sent with every request")
	flags.Duration(keyTimeout, 30*time.Second, "per-request timeout")
	flags.String(keyLocale, string(filter.LocaleEnUS), "display locale")
	flags.String(keyAudio, "", "preferred audio language for search results")
	flags.String(keyToken, "", "bearer access token")
	flags.String(keyRedisURL, "", "redis URL for shared rate limit state (optional)")
	flags.String(keyLogLevel, string(logging.LevelInfo), "log level (debug, info, warn, error, disabled)")
	flags.Bool(keyLogPretty, false, "human readable log output")
	flags.Int(keyPageSize, 20, "items requested per page")

	for _, key := range []string{
		keyBaseURL, keyUserAgent, keyTimeout, keyLocale, keyAudio, keyToken,
		keyRedisURL, keyLogLevel, keyLogPretty, keyPageSize,
	} {
		lo.Must0(v.BindPFlag(key, flags.Lookup(key)))
	}

	root.AddCommand(
		newBrowseCommand(v),
		newSearchCommand(v),
		newSeasonsCommand(v),
		newServeCommand(v),
	)
	return root
}

// newClient builds the transport from configuration. The returned func
// releases the Redis connection, if any.
func newClient(v *viper.Viper) (*client.Client, func(), error) {
	sess, err := newSession(v)
	if err != nil {
		return nil, nil, err
	}

	cfg := client.DefaultConfig(v.GetString(keyUserAgent))
	cfg.BaseURL = v.GetString(keyBaseURL)
	cfg.Timeout = v.GetDuration(keyTimeout)
	cfg.Session = sess

	cleanup := func() {}
	if redisURL := v.GetString(keyRedisURL); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		cfg.Redis = rdb
		cleanup = func() { rdb.Close() }
	}

	c, err := client.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return c, cleanup, nil
}

func newSession(v *viper.Viper) (*session.Session, error) {
	locale, err := filter.ParseLocale(v.GetString(keyLocale))
	if err != nil {
		return nil, err
	}

	var opts []session.Option
	if audio := v.GetString(keyAudio); audio != "" {
		l, err := filter.ParseLocale(audio)
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithPreferredAudio(l))
	}
	if token := v.GetString(keyToken); token != "" {
		opts = append(opts, session.WithAccessToken(token))
	}
	return session.New(locale, opts...), nil
}
