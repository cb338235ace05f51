package metrics

// Metric Names
const (
	MetricNameConversationRounds  = "hanachat_conversation_rounds_total"
	MetricNameTransportFailures   = "hanachat_transport_failures_total"
	MetricNameCoinsAwarded        = "hanachat_coins_awarded_total"
	MetricNameCoinsSpent          = "hanachat_coins_spent_total"
	MetricNameItemsPurchased      = "hanachat_items_purchased_total"
	MetricNameBoosterActivations  = "hanachat_booster_activations_total"
	MetricNameDeveloperCommands   = "hanachat_developer_commands_total"
	MetricNameSessionResets       = "hanachat_session_resets_total"
)

// Help Text
const (
	HelpTextConversationRounds = "Total chat rounds, by outcome"
	HelpTextTransportFailures  = "Total failed chat round-trips"
	HelpTextCoinsAwarded       = "Total coins awarded, by source"
	HelpTextCoinsSpent         = "Total coins spent on purchases"
	HelpTextItemsPurchased     = "Total purchases, by item"
	HelpTextBoosterActivations = "Total booster activations, by item"
	HelpTextDeveloperCommands  = "Total developer commands, by command"
	HelpTextSessionResets      = "Total session resets, by reason"
)

// Label Names
const (
	LabelOutcome = "outcome"
	LabelSource  = "source"
	LabelItem    = "item"
	LabelCommand = "command"
	LabelReason  = "reason"
)

// Label Values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	RewardSourceFirstLogin = "first_login"
	RewardSourceDeveloper  = "developer"

	ResetReasonNewUser         = "new_user"
	ResetReasonEndConversation = "end_conversation"
)
