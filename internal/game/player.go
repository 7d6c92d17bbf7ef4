package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"LumenChat/internal/chatbot"
)

// GameMode is the play style a player is in.
type GameMode string

const (
	ModeSurvival  GameMode = "survival"
	ModeCreative  GameMode = "creative"
	ModeAdventure GameMode = "adventure"
	ModeSpectator GameMode = "spectator"
)

// AllGameModes lists the modes in display order.
func AllGameModes() []GameMode {
	return []GameMode{ModeSurvival, ModeCreative, ModeAdventure, ModeSpectator}
}

// ParseGameMode resolves a mode name or unique prefix.
func ParseGameMode(input string) (GameMode, error) {
	modes := AllGameModes()
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = string(mode)
	}
	idx, ok := UniqueMatch(input, names)
	if !ok {
		return "", fmt.Errorf("unknown game mode %q", strings.TrimSpace(input))
	}
	return modes[idx], nil
}

// DefaultRealm is the world new players start in.
const DefaultRealm = "overworld"

const (
	defaultMaxHealth = 20.0
	maxFoodLevel     = 20
)

// Player represents a connected adventurer.
type Player struct {
	Name        string
	Account     string
	UUID        uuid.UUID
	DisplayName string
	Session     *TelnetSession
	Output      chan string
	Alive       bool
	IsAdmin     bool
	Mode        GameMode
	Realm       string
	Position    chatbot.Position
	Health      float64
	MaxHealth   float64
	Food        int
	Level       int
	Platform    string
	Model       string
	JoinedAt    time.Time
	limiter     *rate.Limiter
}

// PlayerProfile captures persistent player state.
type PlayerProfile struct {
	DisplayName string           `json:"display_name,omitempty"`
	Mode        GameMode         `json:"mode,omitempty"`
	Realm       string           `json:"realm,omitempty"`
	Position    chatbot.Position `json:"position"`
	Health      float64          `json:"health,omitempty"`
	MaxHealth   float64          `json:"max_health,omitempty"`
	Food        int              `json:"food,omitempty"`
	Level       int              `json:"level,omitempty"`
	Platform    string           `json:"platform,omitempty"`
	Model       string           `json:"model,omitempty"`
}

// DefaultProfile is the state handed to brand new players.
func DefaultProfile() PlayerProfile {
	return PlayerProfile{
		Mode:      ModeSurvival,
		Realm:     DefaultRealm,
		Health:    defaultMaxHealth,
		MaxHealth: defaultMaxHealth,
		Food:      maxFoodLevel,
	}
}

func (p *Player) applyProfile(profile PlayerProfile) {
	defaults := DefaultProfile()
	p.DisplayName = profile.DisplayName
	p.Mode = profile.Mode
	if p.Mode == "" {
		p.Mode = defaults.Mode
	}
	p.Realm = profile.Realm
	if p.Realm == "" {
		p.Realm = defaults.Realm
	}
	p.Position = profile.Position
	p.MaxHealth = profile.MaxHealth
	if p.MaxHealth <= 0 {
		p.MaxHealth = defaults.MaxHealth
	}
	p.Health = profile.Health
	if p.Health <= 0 || p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	p.Food = min(max(profile.Food, 0), maxFoodLevel)
	p.Level = max(profile.Level, 0)
	p.Platform = profile.Platform
	p.Model = profile.Model
}

func (p *Player) persistentProfile() PlayerProfile {
	return PlayerProfile{
		DisplayName: p.DisplayName,
		Mode:        p.Mode,
		Realm:       p.Realm,
		Position:    p.Position,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		Food:        p.Food,
		Level:       p.Level,
		Platform:    p.Platform,
		Model:       p.Model,
	}
}

// Profile snapshots the fields the chatbot can reference.
func (p *Player) Profile() chatbot.Profile {
	return chatbot.Profile{
		Name:        p.Name,
		UUID:        p.UUID,
		DisplayName: p.DisplayName,
		Address:     p.Session.RemoteHost(),
		GameMode:    string(p.Mode),
		World:       p.Realm,
		Position:    p.Position,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		FoodLevel:   p.Food,
		ExpLevel:    p.Level,
	}
}

// WindowWidth reports the client's terminal width, or zero when unknown.
func (p *Player) WindowWidth() int {
	if p.Session == nil {
		return 0
	}
	width, _ := p.Session.Size()
	return width
}

const (
	commandLimit  = 5
	commandWindow = time.Second
)

func (p *Player) allowCommand(now time.Time) bool {
	if p.limiter == nil {
		p.limiter = rate.NewLimiter(rate.Every(commandWindow/commandLimit), commandLimit)
	}
	return p.limiter.AllowN(now, 1)
}
