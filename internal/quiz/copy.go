package quiz

import (
	"errors"
	"fmt"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// StageCopy is the heading shown for a stage.
type StageCopy struct {
	Title    string
	Subtitle string
}

// CopyFor returns the heading for stage.
func CopyFor(stage Stage, settings Settings) StageCopy {
	settings = settings.withDefaults()
	switch stage {
	case StageMemorize:
		return StageCopy{
			Title:    fmt.Sprintf("Memorize %d Names", settings.DisplayCount),
			Subtitle: fmt.Sprintf("You have %d seconds. Capture as many as you can.", settings.MemorizeSeconds),
		}
	case StageRecall:
		return StageCopy{
			Title:    "Recall Phase",
			Subtitle: "Type the names you remember, separated by commas or spaces. Order does not matter.",
		}
	case StageResult:
		return StageCopy{
			Title:    "Scoreboard",
			Subtitle: "Nicely done. Results auto-reset so you can run it again.",
		}
	default:
		return StageCopy{
			Title:    "Word Recall Sprint",
			Subtitle: fmt.Sprintf("Welcome to this word recall test. You will see %d words. "+
				"You will then be asked to recall as many of those words as you can. "+
				"Please enter your email to begin.", settings.DisplayCount),
		}
	}
}

// Inline messages shown to the player.
const (
	MsgInvalidEmail  = "Enter a valid email to continue."
	MsgLoadFailed    = "Unable to load names right now. Please try again in a moment."
	MsgEmptyRecall   = "Add at least one name before submitting."
	MsgPersistFailed = "Could not sync this run. Your score is still shown locally."
)

// Message returns the player-facing text for a session error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, domain.ErrEmptyRecall):
		return MsgEmptyRecall
	case errors.Is(err, domain.ErrPersistence):
		return MsgPersistFailed
	default:
		return MsgLoadFailed
	}
}
