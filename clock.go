package main

import (
	"fmt"

	"github.com/Rshep3087/dateperiod/period"
	"github.com/araddon/dateparse"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// newResolver returns a resolver anchored on --now when it is set, otherwise
// on the system clock.
func newResolver(v *viper.Viper) (*period.Resolver, error) {
	nowValue := v.GetString("now")
	if nowValue == "" {
		return period.NewResolver(), nil
	}

	anchor, err := dateparse.ParseAny(nowValue)
	if err != nil {
		return nil, fmt.Errorf("invalid --now value %q: %w", nowValue, err)
	}

	log.Debug("anchoring relative periods", "now", anchor)
	return period.NewResolver(period.WithClock(period.FixedClock(anchor))), nil
}

// periodOptions collects the offset and default period from flags, env and config.
func periodOptions(v *viper.Viper) period.Options {
	return period.Options{
		Offset:  v.GetString("offset"),
		Default: v.GetString("default_period"),
	}
}
