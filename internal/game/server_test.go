package game

import (
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"LumenChat/internal/chatbot"
)

type stubListener struct {
	addr      net.Addr
	acceptErr error
	closed    bool
	mu        sync.Mutex
}

func (s *stubListener) Accept() (net.Conn, error) {
	return nil, s.acceptErr
}

func (s *stubListener) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *stubListener) Addr() net.Addr {
	return s.addr
}

func TestListenAndServeAttachesChatBot(t *testing.T) {
	dir := t.TempDir()
	accountsPath := filepath.Join(dir, "config", "accounts.json")
	rulesDir := filepath.Join(dir, "chatbot")

	sentinel := errors.New("stub listener failure")
	listener := &stubListener{addr: &net.TCPAddr{}, acceptErr: sentinel}

	var captured *World
	originalWorldFactory := worldFactory
	originalNetListen := netListenFunc
	defer func() {
		worldFactory = originalWorldFactory
		netListenFunc = originalNetListen
	}()
	worldFactory = func(logger *zap.Logger) *World {
		captured = NewWorld(logger)
		return captured
	}
	netListenFunc = func(string, string) (net.Listener, error) {
		return listener, nil
	}

	bot := chatbot.New(chatbot.NewRuleSet(chatbot.DefaultRules()...))
	cfg := chatbot.DefaultConfig()
	cfg.Token.Type = chatbot.TokenPlayer

	err := ListenAndServe(
		"127.0.0.1:0",
		accountsPath,
		"admin",
		func(*World, *Player, string) bool { return false },
		WithChatBot(bot, rulesDir),
		WithChatBotConfig(cfg),
	)
	require.ErrorIs(t, err, sentinel)
	require.NotNil(t, captured)
	assert.Same(t, bot, captured.ChatBot())
	assert.Equal(t, chatbot.TokenPlayer, captured.ChatBotConfig().Token.Type)
	assert.True(t, listener.closed, "listener should be closed on return")
}

func TestListenAndServeWithoutChatBot(t *testing.T) {
	dir := t.TempDir()
	sentinel := errors.New("stub listener failure")
	listener := &stubListener{addr: &net.TCPAddr{}, acceptErr: sentinel}

	var captured *World
	originalWorldFactory := worldFactory
	originalNetListen := netListenFunc
	defer func() {
		worldFactory = originalWorldFactory
		netListenFunc = originalNetListen
	}()
	worldFactory = func(logger *zap.Logger) *World {
		captured = NewWorld(logger)
		return captured
	}
	netListenFunc = func(string, string) (net.Listener, error) {
		return listener, nil
	}

	err := ListenAndServe(
		"127.0.0.1:0",
		filepath.Join(dir, "accounts.json"),
		"admin",
		func(*World, *Player, string) bool { return false },
	)
	require.ErrorIs(t, err, sentinel)
	require.NotNil(t, captured)
	assert.Nil(t, captured.ChatBot())
	assert.Equal(t, chatbot.TokenServer, captured.ChatBotConfig().Token.Type)

	_, err = captured.ReloadChatBot()
	assert.ErrorIs(t, err, ErrNoChatBot)
}

func TestListenAndServeRequiresDispatcher(t *testing.T) {
	err := ListenAndServe("127.0.0.1:0", filepath.Join(t.TempDir(), "accounts.json"), "admin", nil)
	require.Error(t, err)
}
