package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminAccount = "admin"

// ErrAccountNotFound is returned for operations on unknown accounts.
var ErrAccountNotFound = errors.New("account not found")

type accountRecord struct {
	Name        string    `json:"name,omitempty"`
	Password    string    `json:"password"`
	UUID        uuid.UUID `json:"uuid"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	LastLogin   time.Time `json:"last_login,omitempty"`
	TotalLogins int       `json:"total_logins,omitempty"`
}

// Account identifies a registered player.
type Account struct {
	Name string
	UUID uuid.UUID
}

// AccountStats summarises persistent account metadata used for in-game displays.
type AccountStats struct {
	UUID        uuid.UUID
	CreatedAt   time.Time
	LastLogin   time.Time
	TotalLogins int
}

type AccountManager struct {
	mu           sync.RWMutex
	accounts     map[string]accountRecord
	path         string
	playersPath  string
	adminAccount string
}

func NewAccountManager(path string) (*AccountManager, error) {
	manager := &AccountManager{
		accounts:     make(map[string]accountRecord),
		path:         path,
		playersPath:  filepath.Join(filepath.Dir(path), "players"),
		adminAccount: defaultAdminAccount,
	}
	if err := manager.load(); err != nil {
		return nil, err
	}
	return manager, nil
}

// accountKey folds name so accounts differing only in case collide.
func accountKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (a *AccountManager) playerFilePath(name string) string {
	sum := sha256.Sum256([]byte(accountKey(name)))
	return filepath.Join(a.playersPath, hex.EncodeToString(sum[:])+".json")
}

func (a *AccountManager) SetAdminAccount(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = defaultAdminAccount
	}
	a.mu.Lock()
	a.adminAccount = trimmed
	a.mu.Unlock()
}

func (a *AccountManager) IsAdmin(name string) bool {
	a.mu.RLock()
	admin := a.adminAccount
	a.mu.RUnlock()
	return strings.EqualFold(name, admin)
}

func (a *AccountManager) load() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(data) == 0) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read accounts file: %w", err)
	}
	var accounts map[string]accountRecord
	if err := json.Unmarshal(data, &accounts); err != nil {
		return fmt.Errorf("decode accounts file: %w", err)
	}
	// Older files keyed records by display name and had no identifiers.
	// When names collide after folding, the first in sorted order wins.
	migrated := false
	for _, name := range slices.Sorted(maps.Keys(accounts)) {
		record := accounts[name]
		key := accountKey(name)
		if key != name {
			migrated = true
		}
		if _, taken := a.accounts[key]; taken {
			continue
		}
		if record.Name == "" {
			record.Name = name
			migrated = true
		}
		if record.UUID == uuid.Nil {
			record.UUID = uuid.New()
			migrated = true
		}
		a.accounts[key] = record
	}
	if migrated {
		return a.saveLocked()
	}
	return nil
}

func (a *AccountManager) saveLocked() error {
	return writeJSONAtomic(a.path, "accounts-*.tmp", a.accounts)
}

// writeJSONAtomic encodes v to a temp file beside path and renames it into
// place.
func writeJSONAtomic(path, pattern string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (a *AccountManager) Exists(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.accounts[accountKey(name)]
	return ok
}

func (a *AccountManager) Register(name, pass string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := accountKey(name)
	if _, ok := a.accounts[key]; ok {
		return fmt.Errorf("account already exists")
	}
	a.accounts[key] = accountRecord{
		Name:      name,
		Password:  string(hashed),
		UUID:      uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.saveLocked(); err != nil {
		delete(a.accounts, key)
		return err
	}
	return nil
}

func (a *AccountManager) Authenticate(name, pass string) bool {
	a.mu.RLock()
	record, ok := a.accounts[accountKey(name)]
	a.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(record.Password), []byte(pass)) == nil
}

// Account returns the identity stored for name. Lookups ignore case and the
// returned Name is the spelling used at registration.
func (a *AccountManager) Account(name string) (Account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	record, ok := a.accounts[accountKey(name)]
	if !ok {
		return Account{}, false
	}
	return Account{Name: record.Name, UUID: record.UUID}, true
}

// Profile retrieves the persisted state for a player. Defaults are returned for
// unknown accounts or unreadable player files.
func (a *AccountManager) Profile(name string) PlayerProfile {
	profile := DefaultProfile()
	data, err := os.ReadFile(a.playerFilePath(name))
	if err != nil {
		return profile
	}
	var disk PlayerProfile
	if err := json.Unmarshal(data, &disk); err != nil {
		return profile
	}
	return disk
}

// SaveProfile persists the provided state for the named account.
func (a *AccountManager) SaveProfile(name string, profile PlayerProfile) error {
	if !a.Exists(name) {
		return ErrAccountNotFound
	}
	return writeJSONAtomic(a.playerFilePath(name), "player-*.tmp", profile)
}

// RecordLogin updates bookkeeping for a successful login.
func (a *AccountManager) RecordLogin(name string, when time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := accountKey(name)
	record, ok := a.accounts[key]
	if !ok {
		return ErrAccountNotFound
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = when.UTC()
	}
	record.LastLogin = when.UTC()
	record.TotalLogins++
	a.accounts[key] = record
	return a.saveLocked()
}

// Stats returns account metadata for display purposes.
func (a *AccountManager) Stats(name string) (AccountStats, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	record, ok := a.accounts[accountKey(name)]
	if !ok {
		return AccountStats{}, false
	}
	return AccountStats{
		UUID:        record.UUID,
		CreatedAt:   record.CreatedAt,
		LastLogin:   record.LastLogin,
		TotalLogins: record.TotalLogins,
	}, true
}
