package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how a batch of booking requests is scheduled.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyFixedPool  Strategy = "fixed"
	StrategyUnbounded  Strategy = "unbounded"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

func ParseStrategy(value string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(value))); s {
	case StrategySequential, StrategyFixedPool, StrategyUnbounded:
		return s, nil
	}
	return "", fmt.Errorf("%q: %w", value, ErrUnknownStrategy)
}

func Strategies() []Strategy {
	return []Strategy{StrategySequential, StrategyFixedPool, StrategyUnbounded}
}
