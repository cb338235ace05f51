package relationship

import (
	"fmt"
	"time"

	"github.com/hanabira/hanachat/internal/domain"
)

// WelcomeMessage is the persona's greeting when a session starts or
// resumes. The line warms with the relationship stage.
func WelcomeMessage(character domain.CharacterID, userName string, level int) string {
	stage := ClassifyStage(level)
	name := userName + StageTitle(stage)

	switch character {
	case domain.CharacterSubaru:
		switch stage {
		case domain.StageEstranged:
			return fmt.Sprintf("...Oh. It's you, %s.", name)
		case domain.StageStranger, domain.StageAcquaintance:
			return fmt.Sprintf("Hey, %s. I'm Subaru. Don't expect me to carry the conversation.", name)
		case domain.StageFriend:
			return fmt.Sprintf("Yo, %s. Took you long enough.", name)
		default:
			return fmt.Sprintf("%s! I was... kind of waiting for you. Don't read into it.", name)
		}
	default:
		switch stage {
		case domain.StageEstranged:
			return fmt.Sprintf("Ah... hello, %s. It's been a while...", name)
		case domain.StageStranger, domain.StageAcquaintance:
			return fmt.Sprintf("Ah... hello, %s. I'm Kaoruko Waguri... it's nice to meet you.", name)
		case domain.StageFriend:
			return fmt.Sprintf("%s! Welcome back. I was hoping you'd come by today.", name)
		default:
			return fmt.Sprintf("%s... I missed you. Let's talk lots today, okay?", name)
		}
	}
}

// DaysSinceFirstMet counts whole days from the recorded first meeting.
// A zero or future timestamp yields 0.
func DaysSinceFirstMet(firstMet, now time.Time) int {
	if firstMet.IsZero() || now.Before(firstMet) {
		return 0
	}
	return int(now.Sub(firstMet) / (24 * time.Hour))
}

// WelcomeBackMessage is the resume-time greeting: the stage-keyed
// welcome line, plus a days-since-first-met remark once at least one
// full day has passed.
func WelcomeBackMessage(character domain.CharacterID, userName string, level, daysSinceFirstMet int) string {
	welcome := WelcomeMessage(character, userName, level)
	if daysSinceFirstMet <= 0 {
		return welcome
	}
	if character == domain.CharacterSubaru {
		return fmt.Sprintf("%s Huh, it's been %d days since we met. Time flies.", welcome, daysSinceFirstMet)
	}
	return fmt.Sprintf("%s It's already been %d days since we first met...", welcome, daysSinceFirstMet)
}

// FarewellMessage is the persona's goodbye appended before the delayed
// session teardown.
func FarewellMessage(character domain.CharacterID, userName string) string {
	if character == domain.CharacterSubaru {
		return fmt.Sprintf("%s... thanks for today. See you around. Don't be a stranger.", userName)
	}
	return fmt.Sprintf("%s... thank you for talking with me today. Let's... let's meet again. Take care...", userName)
}

// TransportFailureMessage is the fixed apologetic line shown when the
// remote chat call fails. No state changes alongside it.
func TransportFailureMessage(character domain.CharacterID) string {
	if character == domain.CharacterSubaru {
		return "...Huh. The line went dead. Give it a second and try again."
	}
	return "U-um...? Something's wrong with the connection... could you wait a little and talk to me again...?"
}
