package model

import (
	"fmt"
	"strings"

	"telegram-midjourney-bot/internal/domain"
)

// Action identifies a job submission kind. Everything except ActionImagine is
// a follow-up on a previously finished job, triggered from an inline button.
type Action string

const (
	ActionImagine   Action = "imagine"
	ActionUpscale   Action = "upscale"
	ActionVariation Action = "variation"
	ActionReroll    Action = "reroll"
	ActionUpsample  Action = "upsample"
)

// FollowUp reports whether the action is a valid button follow-up.
func (a Action) FollowUp() bool {
	switch a {
	case ActionUpscale, ActionVariation, ActionReroll, ActionUpsample:
		return true
	}
	return false
}

// WebhookType selects the callback mode the generation service should use.
// Upscale and variation are single-shot, so only a terminal notification is
// expected; everything else streams progress updates first.
func (a Action) WebhookType() string {
	if a == ActionUpscale || a == ActionVariation {
		return "result"
	}
	return "progress"
}

// CallbackData renders an inline-button payload as "action:hash[:choice]".
func CallbackData(action Action, hash, choice string) string {
	if choice == "" {
		return fmt.Sprintf("%s:%s", action, hash)
	}
	return fmt.Sprintf("%s:%s:%s", action, hash, choice)
}

// ParseCallback splits an "action:hash[:choice]" button payload. The choice
// part is absent for reroll.
func ParseCallback(data string) (Action, string, string, error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", "", "", fmt.Errorf("%w: callback %q", domain.ErrInvalidArgument, data)
	}
	action := Action(parts[0])
	if !action.FollowUp() {
		return "", "", "", fmt.Errorf("%w: callback action %q", domain.ErrInvalidArgument, parts[0])
	}
	choice := ""
	if len(parts) == 3 {
		choice = parts[2]
	}
	return action, parts[1], choice, nil
}
