package chatbot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return fixedInstant }

func TestBotRespondWhoAmI(t *testing.T) {
	bot := New(NewRuleSet(DefaultRules()...), WithClock(fixedClock), WithServerLocation(time.UTC))

	got := bot.Respond("wHO aM i?", Profile{Name: "Steve"})

	assert.Equal(t, []string{"Your name is Steve."}, got)
}

func TestBotRespondResolvesEveryMatch(t *testing.T) {
	rules := NewRuleSet(
		Rule{Match: []string{"time"}, Response: "UTC {time_utc}"},
		Rule{Match: []string{"bangkok time"}, Response: "BKK {time_bangkok}"},
	)
	bot := New(rules, WithClock(fixedClock))

	got := bot.Respond("bangkok time", Profile{})

	assert.Equal(t, []string{"UTC 2025-06-01 20:30:15", "BKK 2025-06-02 03:30:15"}, got)
}

func TestBotRespondNoMatch(t *testing.T) {
	bot := New(NewRuleSet(DefaultRules()...))

	assert.Empty(t, bot.Respond("how do I craft a sword", Profile{}))
}

func TestBotNilRules(t *testing.T) {
	bot := New(nil)

	assert.Equal(t, 0, bot.LoadedRuleCount())
	assert.Empty(t, bot.Respond("anything", Profile{}))
}

func TestBotReplaceSwapsRules(t *testing.T) {
	bot := New(NewRuleSet(Rule{Match: []string{"old"}, Response: "old answer"}))
	require.Equal(t, 1, bot.LoadedRuleCount())

	n := bot.Replace(NewRuleSet(
		Rule{Match: []string{"new"}, Response: "new answer"},
		Rule{Match: []string{"other"}, Response: "other answer"},
	))

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, bot.LoadedRuleCount())
	assert.Empty(t, bot.Respond("old", Profile{}))
	assert.Equal(t, []string{"new answer"}, bot.Respond("new", Profile{}))
}

func TestBotConcurrentRespondAndReplace(t *testing.T) {
	ruleSets := make([]*RuleSet, 4)
	for i := range ruleSets {
		ruleSets[i] = NewRuleSet(
			Rule{Match: []string{"ping"}, Response: fmt.Sprintf("pong %d", i)},
			Rule{Match: []string{"ping"}, Response: fmt.Sprintf("pong %d again", i)},
		)
	}
	bot := New(ruleSets[0], WithClock(fixedClock))

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := bot.Respond("ping", Profile{Name: "Steve"})
				if assert.Len(t, got, 2) {
					assert.Equal(t, got[0]+" again", got[1])
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			bot.Replace(ruleSets[i%len(ruleSets)])
		}
	}()
	wg.Wait()
}
