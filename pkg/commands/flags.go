package commands

import (
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/posts/pkg/commands/options"
	"tableflip.dev/posts/pkg/config"
	"tableflip.dev/posts/pkg/post"
)

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if f := flags.Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// newFetcher builds the posts client for cfg. Verbose runs log each round
// trip to logger.
func newFetcher(cfg *config.Config, so *options.SourceOptions, logger *log.Logger) post.Fetcher {
	opts := []post.ClientOption{post.WithTimeout(cfg.Timeout)}
	if so.Verbose {
		opts = append(opts, post.WithRoundTripLog(logger))
	}
	return post.NewClient(cfg.URL, opts...)
}
