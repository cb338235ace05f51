package relationship

import (
	"context"
	"sync"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/store"
)

// Engine owns the affection score, the emotion display state and the
// developer override flags for the running session.
type Engine struct {
	mu        sync.Mutex
	kv        store.KV
	character domain.Character
	affection domain.AffectionState
	emotion   domain.EmotionState
	override  domain.DeveloperOverride
}

// NewEngine creates an engine for character seeded from a persisted
// snapshot. Emotion is never persisted; it starts at the default.
func NewEngine(kv store.KV, character domain.Character, affection domain.AffectionState, override domain.DeveloperOverride) *Engine {
	return &Engine{
		kv:        kv,
		character: character,
		affection: affection,
		emotion:   DefaultEmotion(character),
		override:  override,
	}
}

// Character returns the persona this engine tracks.
func (e *Engine) Character() domain.Character {
	return e.character
}

// Affection returns a copy of the affection state.
func (e *Engine) Affection() domain.AffectionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.affection
}

// Emotion returns a copy of the emotion display state.
func (e *Engine) Emotion() domain.EmotionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emotion
}

// Override returns a copy of the developer override flags.
func (e *Engine) Override() domain.DeveloperOverride {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.override
}

// Stage classifies the current level.
func (e *Engine) Stage() domain.Stage {
	return ClassifyStage(e.Affection().Level)
}

// Reset returns the engine to its zero state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.affection = domain.AffectionState{}
	e.emotion = DefaultEmotion(e.character)
	e.override = domain.DeveloperOverride{}
}

// ApplyServerLevel overwrites the level from a reply, unless the
// affection lock is engaged. Returns whether the update was applied.
func (e *Engine) ApplyServerLevel(ctx context.Context, level, delta int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.override.AffectionLocked {
		logger.FromContext(ctx).Debug("server affection ignored, lock engaged", "level", level)
		return false
	}

	e.affection.Level = level
	e.affection.LastDelta = delta
	e.persistLevel(ctx)
	return true
}

// SetEmotion replaces the display state, typically from reply fields.
func (e *Engine) SetEmotion(state domain.EmotionState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emotion = state
}

// OverrideLevel sets the level from a developer command, engages both the
// override and the affection lock, and persists level and lock
// synchronously. Returns the previous level.
func (e *Engine) OverrideLevel(ctx context.Context, level int) (oldLevel int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	oldLevel = e.affection.Level
	e.affection.Level = level
	e.affection.LastDelta = level - oldLevel
	e.override.Enabled = true
	e.override.AffectionLocked = true
	// Local recomputation replaces server-supplied emotion while locked.
	e.emotion = EmotionForLevel(level, e.character)

	e.persistLevel(ctx)
	e.persistOverride(ctx)
	return oldLevel
}

// ClearOverride drops the override and the lock, restoring server-driven
// updates on the next reply.
func (e *Engine) ClearOverride(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.override = domain.DeveloperOverride{}
	e.persistOverride(ctx)
}

// ApplyPurchaseBonus adds a direct-purchase affection increment. Applies
// even while the lock is engaged, clamped to the level bounds.
func (e *Engine) ApplyPurchaseBonus(ctx context.Context, delta int) (newLevel int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	level := e.affection.Level + delta
	if level > domain.AffectionMax {
		level = domain.AffectionMax
	}
	if level < domain.AffectionMin {
		level = domain.AffectionMin
	}
	e.affection.LastDelta = level - e.affection.Level
	e.affection.Level = level

	if e.override.AffectionLocked {
		e.emotion = EmotionForLevel(level, e.character)
	}
	e.persistLevel(ctx)
	return level
}

// persistLevel and persistOverride write best-effort. Callers hold e.mu.
func (e *Engine) persistLevel(ctx context.Context) {
	if err := store.SaveAffection(ctx, e.kv, e.affection.Level); err != nil {
		logger.FromContext(ctx).Warn("persist affection failed", "error", err)
	}
}

func (e *Engine) persistOverride(ctx context.Context) {
	if err := store.SaveOverride(ctx, e.kv, e.override); err != nil {
		logger.FromContext(ctx).Warn("persist override failed", "error", err)
	}
}
