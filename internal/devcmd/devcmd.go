// Package devcmd implements the in-band developer override channel.
// Input starting with the reserved prefix is intercepted before it can
// reach the network; recognized commands bypass normal server-driven
// affection updates and lock them until explicitly released.
package devcmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hanabira/hanachat/internal/catalog"
	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/economy"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/metrics"
	"github.com/hanabira/hanachat/internal/relationship"
	"github.com/hanabira/hanachat/internal/store"
)

// Prefix reserves developer input. Anything starting with it is never
// sent to the remote service.
const Prefix = "/dev"

// Coin grant bounds: (0, MaxCoinGrant].
const MaxCoinGrant = 100000

// Command tokens.
const (
	cmdMax       = "max"
	cmdAffection = "affection"
	cmdCoins     = "coins"
	cmdUnlock    = "unlock"
	cmdStatus    = "status"
	cmdClear     = "clear"
	cmdHelp      = "help"
	cmdPing      = "ping"
)

// IsCommand reports whether input should be intercepted.
func IsCommand(input string) bool {
	trimmed := strings.TrimSpace(input)
	return trimmed == Prefix || strings.HasPrefix(trimmed, Prefix+" ")
}

// Handler executes developer commands against the live engines.
type Handler struct {
	Relationship *relationship.Engine
	Economy      *economy.Engine
	Inventory    *domain.Inventory
	KV           store.KV
}

// Execute parses and runs one command line, returning the transcript
// lines it produced. Input must satisfy IsCommand.
func (h *Handler) Execute(ctx context.Context, input string) []domain.Message {
	fields := strings.Fields(strings.TrimSpace(input))
	// fields[0] is the prefix itself.
	if len(fields) < 2 {
		return h.help()
	}

	command := fields[1]
	args := fields[2:]
	metrics.DeveloperCommands.WithLabelValues(command).Inc()
	logger.FromContext(ctx).Debug("developer command", "command", command)

	switch command {
	case cmdMax:
		return h.setAffection(ctx, domain.AffectionMax)
	case cmdAffection:
		if len(args) != 1 {
			return system("usage: /dev affection <level>")
		}
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return system(fmt.Sprintf("affection level must be an integer, got %q", args[0]))
		}
		if level < domain.AffectionMin || level > domain.AffectionMax {
			return system(fmt.Sprintf("affection level must be between %d and %d", domain.AffectionMin, domain.AffectionMax))
		}
		return h.setAffection(ctx, level)
	case cmdCoins:
		if len(args) != 1 {
			return system("usage: /dev coins <amount>")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return system(fmt.Sprintf("coin amount must be an integer, got %q", args[0]))
		}
		if amount <= 0 || amount > MaxCoinGrant {
			return system(fmt.Sprintf("coin amount must be between 1 and %d", MaxCoinGrant))
		}
		h.Economy.GrantCoins(ctx, amount)
		return system(fmt.Sprintf("granted %d coins (balance %d)", amount, h.Economy.State().Coins))
	case cmdUnlock:
		return h.unlockThemes(ctx)
	case cmdStatus:
		return h.status()
	case cmdClear:
		h.Relationship.ClearOverride(ctx)
		return system("override cleared, server-driven updates restored")
	case cmdHelp:
		return h.help()
	case cmdPing:
		return system("developer channel test acknowledged")
	default:
		return system(fmt.Sprintf("%s: %s (try /dev help)", domain.ErrMsgInvalidCommand, command))
	}
}

// setAffection runs the shared path for max and explicit levels: record
// old/new, engage override and lock, persist synchronously, and emit the
// system line plus the persona's reaction.
func (h *Handler) setAffection(ctx context.Context, level int) []domain.Message {
	old := h.Relationship.OverrideLevel(ctx, level)
	reaction := relationship.ReactionMessage(old, level, h.Relationship.Character().ID)

	return []domain.Message{
		{Sender: domain.SenderSystem, Text: fmt.Sprintf("[dev] affection %d -> %d, lock engaged", old, level)},
		{Sender: domain.SenderBot, Text: reaction},
	}
}

func (h *Handler) unlockThemes(ctx context.Context) []domain.Message {
	for _, id := range catalog.ThemeIDs() {
		h.Inventory.OwnedThemeIDs[id] = true
	}
	if err := store.SaveInventory(ctx, h.KV, *h.Inventory); err != nil {
		logger.FromContext(ctx).Warn("persist inventory failed", "error", err)
	}
	return system(fmt.Sprintf("all %d themes unlocked", len(catalog.ThemeIDs())))
}

func (h *Handler) status() []domain.Message {
	override := h.Relationship.Override()
	affection := h.Relationship.Affection()
	eco := h.Economy.State()
	return system(fmt.Sprintf(
		"override=%t lock=%t affection=%d stage=%q coins=%d lifetime=%d",
		override.Enabled, override.AffectionLocked,
		affection.Level, relationship.ClassifyStage(affection.Level),
		eco.Coins, eco.LifetimeCoins,
	))
}

func (h *Handler) help() []domain.Message {
	return system("commands: max | affection <-100..100> | coins <1..100000> | unlock | status | clear | help | ping")
}

func system(text string) []domain.Message {
	return []domain.Message{{Sender: domain.SenderSystem, Text: "[dev] " + text}}
}
