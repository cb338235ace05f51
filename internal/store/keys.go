package store

// Persisted state keys. The store is one flat string namespace; every key
// carries the chatbot_ prefix. Keys under the legacy kaoruko_ prefix from
// earlier releases are ignored.
const (
	KeyUserName        = "chatbot_user_name"
	KeyCharacter       = "chatbot_character"
	KeyFirstMet        = "chatbot_first_met"
	KeyAffectionLevel  = "chatbot_affection_level"
	KeySessionActive   = "chatbot_session_active"
	KeyCoins           = "chatbot_coins"
	KeyLifetimeCoins   = "chatbot_lifetime_coins"
	KeyFirstLogin      = "chatbot_first_login"
	KeyActiveTheme     = "chatbot_active_theme"
	KeyOwnedThemes     = "chatbot_owned_themes"
	KeyDeveloperMode   = "chatbot_developer_mode"
	KeyAffectionLocked = "chatbot_affection_locked"
)

// SessionKeys lists every key owned by a session, in erase order.
func SessionKeys() []string {
	return []string{
		KeyUserName,
		KeyCharacter,
		KeyFirstMet,
		KeyAffectionLevel,
		KeySessionActive,
		KeyCoins,
		KeyLifetimeCoins,
		KeyFirstLogin,
		KeyActiveTheme,
		KeyOwnedThemes,
		KeyDeveloperMode,
		KeyAffectionLocked,
	}
}
