package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"LumenChat/internal/chatbot"
)

// ErrNoChatBot is returned when chatbot operations run before a bot is
// attached.
var ErrNoChatBot = errors.New("chatbot is not available")

// World tracks connected players and the services they share.
type World struct {
	mu          sync.RWMutex
	players     map[string]*Player
	playerOrder []string
	accounts    *AccountManager
	logger      *zap.Logger

	bot       *chatbot.Bot
	rulesDir  string
	botConfig chatbot.Config
}

// NewWorld returns an empty world.
func NewWorld(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		players:     make(map[string]*Player),
		playerOrder: make([]string, 0),
		logger:      logger,
		botConfig:   chatbot.DefaultConfig(),
	}
}

// AttachAccountManager wires persistent account storage.
func (w *World) AttachAccountManager(accounts *AccountManager) {
	w.mu.Lock()
	w.accounts = accounts
	w.mu.Unlock()
}

// AttachChatBot wires the chatbot. rulesDir is reread by ReloadChatBot.
func (w *World) AttachChatBot(bot *chatbot.Bot, rulesDir string) {
	w.mu.Lock()
	w.bot = bot
	w.rulesDir = rulesDir
	w.mu.Unlock()
}

// ChatBot returns the attached bot, or nil.
func (w *World) ChatBot() *chatbot.Bot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bot
}

// SetChatBotConfig stores the chatbot configuration.
func (w *World) SetChatBotConfig(cfg chatbot.Config) {
	w.mu.Lock()
	w.botConfig = cfg
	w.mu.Unlock()
}

// ChatBotConfig returns the chatbot configuration.
func (w *World) ChatBotConfig() chatbot.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.botConfig
}

// ReloadChatBot rebuilds the rule set from the rules directory and swaps it
// into the bot once loading has finished.
func (w *World) ReloadChatBot() (chatbot.LoadReport, error) {
	w.mu.RLock()
	bot, dir := w.bot, w.rulesDir
	w.mu.RUnlock()
	if bot == nil {
		return chatbot.LoadReport{}, ErrNoChatBot
	}
	rules, report := chatbot.LoadDir(dir, w.logger)
	bot.Replace(rules)
	return report, nil
}

// AccountStats returns account metadata for display.
func (w *World) AccountStats(name string) (AccountStats, bool) {
	w.mu.RLock()
	accounts := w.accounts
	w.mu.RUnlock()
	if accounts == nil {
		return AccountStats{}, false
	}
	return accounts.Stats(name)
}

// ActivePlayer returns the connected player with the provided name.
func (w *World) ActivePlayer(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[name]
	if !ok || !p.Alive {
		return nil, false
	}
	return p, true
}

// PrepareTakeover detaches the live session for name so a new connection
// can claim the player. The old session and output channel are returned for
// the caller to notify and close.
func (w *World) PrepareTakeover(name string) (*TelnetSession, chan string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	existing, ok := w.players[name]
	if !ok || !existing.Alive {
		return nil, nil, false
	}
	oldSession, oldOutput := existing.Session, existing.Output
	existing.Session = nil
	existing.Output = nil
	existing.Alive = false
	w.removePlayerOrderLocked(name)
	return oldSession, oldOutput, true
}

func (w *World) addPlayer(account Account, session *TelnetSession, isAdmin bool, profile PlayerProfile) (*Player, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.players[account.Name]; ok && existing.Alive {
		return nil, fmt.Errorf("%s is already connected", account.Name)
	}
	p := &Player{
		Name:     account.Name,
		Account:  account.Name,
		UUID:     account.UUID,
		Session:  session,
		Output:   make(chan string, 32),
		Alive:    true,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now(),
	}
	p.applyProfile(profile)
	w.players[p.Name] = p
	w.removePlayerOrderLocked(p.Name)
	w.playerOrder = append(w.playerOrder, p.Name)
	return p, nil
}

func (w *World) removePlayer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[name]
	if !ok {
		return
	}
	delete(w.players, name)
	w.removePlayerOrderLocked(name)
	if p.Output != nil {
		close(p.Output)
	}
}

func (w *World) removePlayerOrderLocked(name string) {
	for i, existing := range w.playerOrder {
		if existing == name {
			w.playerOrder = append(w.playerOrder[:i], w.playerOrder[i+1:]...)
			return
		}
	}
}

// AddPlayerForTest registers p without a session.
func (w *World) AddPlayerForTest(p *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p.Mode == "" {
		p.applyProfile(DefaultProfile())
	}
	w.players[p.Name] = p
	w.removePlayerOrderLocked(p.Name)
	w.playerOrder = append(w.playerOrder, p.Name)
}

// ListPlayers returns the names of connected players in login order.
func (w *World) ListPlayers() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.playerOrder))
	for _, name := range w.playerOrder {
		if p, ok := w.players[name]; ok && p.Alive {
			names = append(names, p.Name)
		}
	}
	return names
}

// BroadcastToRealm sends msg to every live player in realm except one.
func (w *World) BroadcastToRealm(realm, msg string, except *Player) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.players {
		if p == except || !p.Alive || p.Output == nil {
			continue
		}
		if !strings.EqualFold(p.Realm, realm) {
			continue
		}
		select {
		case p.Output <- msg:
		default:
		}
	}
}

// UpdatePlayer applies fn to p under the world lock and persists the result.
func (w *World) UpdatePlayer(p *Player, fn func(*Player)) {
	w.mu.Lock()
	fn(p)
	w.mu.Unlock()
	w.PersistPlayer(p)
}

// PersistPlayer flushes the player's state to the account store.
func (w *World) PersistPlayer(p *Player) {
	if p == nil {
		return
	}
	w.mu.RLock()
	accounts := w.accounts
	account := p.Account
	profile := p.persistentProfile()
	w.mu.RUnlock()
	if accounts == nil || account == "" {
		return
	}
	if err := accounts.SaveProfile(account, profile); err != nil {
		w.logger.Warn("failed to persist player state", zap.String("player", account), zap.Error(err))
	}
}

// FilterOut returns names without target, compared case-insensitively.
func FilterOut(names []string, target string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(name, target) {
			continue
		}
		out = append(out, name)
	}
	return out
}
