package internal

import (
	"context"
	"fmt"
	"log/slog"
)

// MembershipManager computes and applies the set of users to invite to a
// new incident channel.
type MembershipManager struct {
	api    SlackAPI
	config *Config
}

func NewMembershipManager(api SlackAPI, config *Config) *MembershipManager {
	return &MembershipManager{
		api:    api,
		config: config,
	}
}

// ChannelMembers returns the ordered, distinct set of users to invite: the
// configured base roster, then the commander and comms assignee if missing.
// The reporter is filtered out: channel creation already puts the creator
// in the channel, and Slack rejects self-invites outright.
func (m *MembershipManager) ChannelMembers(ctx context.Context, req IncidentRequest) []string {
	var base []string
	switch m.config.InviteStrategy {
	case StrategyRoster:
		base = m.config.Roster
	case StrategyGroup:
		if m.config.GroupID == "" {
			slog.WarnContext(ctx, "No incident usergroup configured, inviting role assignees only")
			break
		}
		groupMembers, err := m.api.GroupMembers(ctx, m.config.GroupID)
		if err != nil {
			// Lookup failure degrades to an empty roster; the roles still
			// get invited.
			slog.WarnContext(ctx, "Failed to look up incident usergroup members", "groupID", m.config.GroupID, "error", err)
			break
		}
		base = groupMembers
	}

	members := make([]string, 0, len(base)+2)
	for _, id := range base {
		members = appendIfMissing(members, id)
	}
	members = appendIfMissing(members, req.Commander)
	if req.Comms != "" {
		members = appendIfMissing(members, req.Comms)
	}

	invitees := make([]string, 0, len(members))
	for _, id := range members {
		if id != req.Reporter {
			invitees = append(invitees, id)
		}
	}
	return invitees
}

// Invite applies the membership set as one batched call. Failure is
// non-fatal for the incident and reported as a stage result.
func (m *MembershipManager) Invite(ctx context.Context, channelID string, req IncidentRequest) StageResult {
	members := m.ChannelMembers(ctx, req)
	if len(members) == 0 {
		return StageResult{Stage: StageInvite, OK: true, Detail: "no users to invite"}
	}

	if err := m.api.InviteUsersToChannel(ctx, channelID, members...); err != nil {
		if reason, ok := apiErrorReason(err); ok {
			return StageResult{Stage: StageInvite, OK: false, Detail: "inviting users to the channel failed. Reason: " + reason}
		}
		return StageResult{Stage: StageInvite, OK: false, Detail: "inviting users to the channel failed: " + err.Error()}
	}
	return StageResult{Stage: StageInvite, OK: true, Detail: fmt.Sprintf("invited %d users to the channel", len(members))}
}

func appendIfMissing(slice []string, i string) []string {
	for _, ele := range slice {
		if ele == i {
			return slice
		}
	}
	return append(slice, i)
}
