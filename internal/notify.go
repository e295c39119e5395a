package internal

import (
	"context"
	"fmt"
)

const (
	RoleCommander      = "commander"
	RoleCommunications = "communications"
)

// Notifier sends the role-assignment direct messages. The orchestrator
// only invokes it when the assignee differs from the reporter.
type Notifier struct {
	api SlackAPI
}

func NewNotifier(api SlackAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) NotifyRole(ctx context.Context, channelID, userID, role string) StageResult {
	stage := StageNotifyCommander
	if role == RoleCommunications {
		stage = StageNotifyComms
	}

	text := fmt.Sprintf("You have been declared the incident %s for <#%s>. I've already invited you to the channel, but you should get involved ASAP.", role, channelID)
	if err := n.api.PostDirectMessage(ctx, userID, text); err != nil {
		if reason, ok := apiErrorReason(err); ok {
			return StageResult{Stage: stage, OK: false, Detail: fmt.Sprintf("notification message could not be delivered to <@%s>. Reason: %s", userID, reason)}
		}
		return StageResult{Stage: stage, OK: false, Detail: fmt.Sprintf("notification message could not be delivered to <@%s>: %s", userID, err.Error())}
	}
	return StageResult{Stage: stage, OK: true, Detail: fmt.Sprintf("notification message was delivered to <@%s>", userID)}
}
