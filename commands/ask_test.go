package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"LumenChat/internal/chatbot"
	"LumenChat/internal/game"
)

func newBotWorld(rules ...chatbot.Rule) *game.World {
	world := game.NewWorld(nil)
	clock := func() time.Time { return time.Date(2025, 6, 1, 20, 30, 15, 0, time.UTC) }
	bot := chatbot.New(chatbot.NewRuleSet(rules...), chatbot.WithClock(clock), chatbot.WithServerLocation(time.UTC))
	world.AttachChatBot(bot, "")
	return world
}

func TestAskAnswersWithPlayerContext(t *testing.T) {
	world := newBotWorld(chatbot.DefaultRules()...)
	player := newTestPlayer("Steve")
	player.UUID = uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask who am i?")
	output := strings.Join(drainOutput(player.Output), "\n")
	if !strings.Contains(output, "You ask: who am i?") {
		t.Fatalf("missing question echo: %q", output)
	}
	if !strings.Contains(output, "[ChatBot] Your name is Steve.") {
		t.Fatalf("unexpected bot reply: %q", output)
	}
}

func TestAskResolvesTimePlaceholders(t *testing.T) {
	world := newBotWorld(chatbot.DefaultRules()...)
	player := newTestPlayer("Steve")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask What time is it in GMT+7?")
	output := strings.Join(drainOutput(player.Output), "\n")
	if !strings.Contains(output, "The current time in GMT+7 is 2025-06-02 03:30:15.") {
		t.Fatalf("unexpected bot reply: %q", output)
	}
}

func TestAskSendsEveryMatchingReply(t *testing.T) {
	world := newBotWorld(
		chatbot.Rule{Match: []string{"hello"}, Response: "first"},
		chatbot.Rule{Match: []string{"hello there"}, Response: "second"},
	)
	player := newTestPlayer("Steve")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask hello there")
	msgs := drainOutput(player.Output)
	var replies []string
	for _, msg := range msgs {
		if strings.HasPrefix(msg, "[ChatBot]") {
			replies = append(replies, msg)
		}
	}
	if len(replies) != 2 || replies[0] != "[ChatBot] first" || replies[1] != "[ChatBot] second" {
		t.Fatalf("replies = %v, want first then second", replies)
	}
}

func TestAskFallsBackWhenNothingMatches(t *testing.T) {
	world := newBotWorld(chatbot.Rule{Match: []string{"ping"}, Response: "pong"})
	player := newTestPlayer("Steve")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask what is the meaning of life")
	output := strings.Join(drainOutput(player.Output), "\n")
	if !strings.Contains(output, "[ChatBot] "+noAnswer) {
		t.Fatalf("expected fallback reply, got %q", output)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	world := newBotWorld(chatbot.DefaultRules()...)
	player := newTestPlayer("Steve")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask   ")
	output := strings.Join(drainOutput(player.Output), "\n")
	if !strings.Contains(output, "Usage: ask <question>") {
		t.Fatalf("expected usage, got %q", output)
	}
	if strings.Contains(output, "[ChatBot]") {
		t.Fatalf("bot should not answer an empty question: %q", output)
	}
}

func TestAskWithoutChatBot(t *testing.T) {
	world := game.NewWorld(nil)
	player := newTestPlayer("Steve")
	world.AddPlayerForTest(player)

	Dispatch(world, player, "ask hello")
	output := strings.Join(drainOutput(player.Output), "\n")
	if !strings.Contains(output, "chatbot is not available") {
		t.Fatalf("unexpected output: %q", output)
	}
}
