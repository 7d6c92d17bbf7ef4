package chatbot

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Bot answers player questions from the active rule set.
type Bot struct {
	rules    atomic.Pointer[RuleSet]
	resolver *Resolver
	clock    func() time.Time
	logger   *zap.Logger
}

type botOptions struct {
	server *time.Location
	clock  func() time.Time
	logger *zap.Logger
}

// Option customises a Bot.
type Option func(*botOptions)

// WithServerLocation sets the zone reported by {time_server}. The default is
// time.Local.
func WithServerLocation(loc *time.Location) Option {
	return func(opts *botOptions) {
		opts.server = loc
	}
}

// WithClock overrides the source of the current instant.
func WithClock(clock func() time.Time) Option {
	return func(opts *botOptions) {
		opts.clock = clock
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *botOptions) {
		opts.logger = logger
	}
}

// New returns a bot serving rules. A nil rule set behaves as an empty one.
func New(rules *RuleSet, opts ...Option) *Bot {
	options := botOptions{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.clock == nil {
		options.clock = time.Now
	}
	logger := orNop(options.logger)
	b := &Bot{
		resolver: NewResolver(options.server, logger),
		clock:    options.clock,
		logger:   logger,
	}
	if rules == nil {
		rules = NewRuleSet()
	}
	b.rules.Store(rules)
	return b
}

// Respond matches input and resolves every matched template against the
// profile. The result is empty when nothing matches.
func (b *Bot) Respond(input string, p Profile) []string {
	templates := Match(b.rules.Load(), input)
	if len(templates) == 0 {
		return nil
	}
	now := b.clock()
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		out[i] = b.resolver.Resolve(tmpl, p, now)
	}
	b.logger.Debug("chatbot matched",
		zap.String("player", p.Name),
		zap.String("input", input),
		zap.Int("responses", len(out)))
	return out
}

// LoadedRuleCount reports how many rules are active.
func (b *Bot) LoadedRuleCount() int {
	return b.rules.Load().Len()
}

// Replace atomically swaps in a fully built rule set and returns the count
// of rules now active.
func (b *Bot) Replace(rules *RuleSet) int {
	if rules == nil {
		rules = NewRuleSet()
	}
	b.rules.Store(rules)
	b.logger.Info("chatbot rules replaced", zap.Int("rules", rules.Len()))
	return rules.Len()
}
