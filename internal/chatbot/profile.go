package chatbot

import (
	"strings"

	"github.com/google/uuid"
)

// Unknown is substituted for profile fields that are not available.
const Unknown = "unknown"

// Position is a point in a player's world.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Profile is the read-only view of a player used to fill context
// placeholders. Callers build a fresh Profile for every request.
type Profile struct {
	Name        string
	UUID        uuid.UUID
	DisplayName string
	// Address is the host part of the player's network address. Empty when
	// the player has no live connection.
	Address   string
	GameMode  string
	World     string
	Position  Position
	Health    float64
	MaxHealth float64
	FoodLevel int
	ExpLevel  int
}

// ShortUUID returns the first dash separated segment of the UUID.
func (p Profile) ShortUUID() string {
	id := p.UUID.String()
	if head, _, ok := strings.Cut(id, "-"); ok {
		return head
	}
	return id
}

func (p Profile) displayName() string {
	if strings.TrimSpace(p.DisplayName) == "" {
		return p.Name
	}
	return p.DisplayName
}

func (p Profile) address() string {
	if strings.TrimSpace(p.Address) == "" {
		return Unknown
	}
	return p.Address
}

func (p Profile) gameMode() string {
	if strings.TrimSpace(p.GameMode) == "" {
		return Unknown
	}
	return strings.ToUpper(p.GameMode)
}
