package store

import (
	"context"

	"github.com/hanabira/hanachat/internal/domain"
)

// Snapshot is the fully decoded persisted state. Absent keys decode to
// zero values.
type Snapshot struct {
	Session   domain.Session
	Affection domain.AffectionState
	Economy   domain.Economy
	Inventory domain.Inventory
	Override  domain.DeveloperOverride
}

// LoadSnapshot reads and decodes every session key.
func LoadSnapshot(ctx context.Context, kv KV) (Snapshot, error) {
	var snap Snapshot

	read := func(key string) (string, error) {
		value, _, err := kv.Get(ctx, key)
		return value, err
	}

	userName, err := read(KeyUserName)
	if err != nil {
		return snap, err
	}
	character, err := read(KeyCharacter)
	if err != nil {
		return snap, err
	}
	active, err := read(KeySessionActive)
	if err != nil {
		return snap, err
	}
	firstMet, err := read(KeyFirstMet)
	if err != nil {
		return snap, err
	}
	snap.Session = domain.Session{
		UserName:  userName,
		Character: domain.CharacterID(character),
		Active:    DecodeFlag(active),
		FirstMet:  DecodeTime(firstMet),
	}

	level, err := read(KeyAffectionLevel)
	if err != nil {
		return snap, err
	}
	snap.Affection = domain.AffectionState{Level: DecodeInt(level, 0)}

	coins, err := read(KeyCoins)
	if err != nil {
		return snap, err
	}
	lifetime, err := read(KeyLifetimeCoins)
	if err != nil {
		return snap, err
	}
	firstLogin, err := read(KeyFirstLogin)
	if err != nil {
		return snap, err
	}
	snap.Economy = domain.Economy{
		Coins:             DecodeInt(coins, 0),
		LifetimeCoins:     DecodeInt(lifetime, 0),
		FirstLoginGranted: DecodeFlag(firstLogin),
	}

	owned, err := read(KeyOwnedThemes)
	if err != nil {
		return snap, err
	}
	activeTheme, err := read(KeyActiveTheme)
	if err != nil {
		return snap, err
	}
	snap.Inventory = domain.Inventory{
		OwnedThemeIDs: DecodeThemeList(owned),
		ActiveThemeID: activeTheme,
	}
	if snap.Inventory.ActiveThemeID == "" {
		snap.Inventory.ActiveThemeID = domain.DefaultThemeID
	}

	devMode, err := read(KeyDeveloperMode)
	if err != nil {
		return snap, err
	}
	locked, err := read(KeyAffectionLocked)
	if err != nil {
		return snap, err
	}
	snap.Override = domain.DeveloperOverride{
		Enabled:         DecodeFlag(devMode),
		AffectionLocked: DecodeFlag(locked),
	}

	return snap, nil
}

// SaveSession persists session identity. The active flag keeps its
// historical string encoding: "true" when set, key deleted when not.
func SaveSession(ctx context.Context, kv KV, s domain.Session) error {
	if err := kv.Set(ctx, KeyUserName, s.UserName); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyCharacter, string(s.Character)); err != nil {
		return err
	}
	if s.FirstMet.IsZero() {
		if err := kv.Delete(ctx, KeyFirstMet); err != nil {
			return err
		}
	} else if err := kv.Set(ctx, KeyFirstMet, EncodeTime(s.FirstMet)); err != nil {
		return err
	}
	return SaveSessionActive(ctx, kv, s.Active)
}

// SaveSessionActive persists only the session-active flag.
func SaveSessionActive(ctx context.Context, kv KV, active bool) error {
	if !active {
		return kv.Delete(ctx, KeySessionActive)
	}
	return kv.Set(ctx, KeySessionActive, EncodeFlag(true))
}

// SaveAffection persists the affection level.
func SaveAffection(ctx context.Context, kv KV, level int) error {
	return kv.Set(ctx, KeyAffectionLevel, EncodeInt(level))
}

// SaveEconomy persists the coin balances and first-login flag. Each key
// is written independently; there is no cross-key transaction.
func SaveEconomy(ctx context.Context, kv KV, e domain.Economy) error {
	if err := kv.Set(ctx, KeyCoins, EncodeInt(e.Coins)); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyLifetimeCoins, EncodeInt(e.LifetimeCoins)); err != nil {
		return err
	}
	if !e.FirstLoginGranted {
		return kv.Delete(ctx, KeyFirstLogin)
	}
	return kv.Set(ctx, KeyFirstLogin, EncodeFlag(true))
}

// SaveInventory persists owned themes and the active theme.
func SaveInventory(ctx context.Context, kv KV, inv domain.Inventory) error {
	if err := kv.Set(ctx, KeyOwnedThemes, EncodeThemeList(inv.OwnedThemeIDs)); err != nil {
		return err
	}
	return kv.Set(ctx, KeyActiveTheme, inv.ActiveThemeID)
}

// SaveOverride persists the developer override flags.
func SaveOverride(ctx context.Context, kv KV, o domain.DeveloperOverride) error {
	if !o.Enabled {
		if err := kv.Delete(ctx, KeyDeveloperMode); err != nil {
			return err
		}
	} else if err := kv.Set(ctx, KeyDeveloperMode, EncodeFlag(true)); err != nil {
		return err
	}
	if !o.AffectionLocked {
		return kv.Delete(ctx, KeyAffectionLocked)
	}
	return kv.Set(ctx, KeyAffectionLocked, EncodeFlag(true))
}
