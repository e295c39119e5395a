package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// SlackAPI is the set of Slack operations the incident flow depends on.
// SlackService is the production implementation; tests substitute a fake.
type SlackAPI interface {
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	CreateChannel(ctx context.Context, name string, isPrivate bool) (*slack.Channel, error)
	InviteUsersToChannel(ctx context.Context, channelID string, userIDs ...string) error
	SetChannelTopic(ctx context.Context, channelID, topic string) error
	PostMessage(ctx context.Context, channelID, fallback string, blocks []slack.Block) (string, error)
	PostDirectMessage(ctx context.Context, userID, text string) error
	GroupMembers(ctx context.Context, groupID string) ([]string, error)
}

// SlackService wraps two Slack clients: the bot-scoped client for modal,
// message, and usergroup operations, and the user-scoped client for channel
// creation, invites, and topics, which need user-level permission.
type SlackService struct {
	botClient  *slack.Client
	userClient *slack.Client
}

func NewSlackService(botClient, userClient *slack.Client) *SlackService {
	return &SlackService{
		botClient:  botClient,
		userClient: userClient,
	}
}

func (s *SlackService) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	_, err := s.botClient.OpenViewContext(ctx, triggerID, view)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to open modal view", "error", err)
		return fmt.Errorf("failed to open modal view: %w", err)
	}
	return nil
}

func (s *SlackService) CreateChannel(ctx context.Context, name string, isPrivate bool) (*slack.Channel, error) {
	channel, err := s.userClient.CreateConversationContext(ctx, slack.CreateConversationParams{
		ChannelName: name,
		IsPrivate:   isPrivate,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create Slack channel", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create Slack channel: %w", err)
	}
	return channel, nil
}

func (s *SlackService) InviteUsersToChannel(ctx context.Context, channelID string, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}

	_, err := s.userClient.InviteUsersToConversationContext(ctx, channelID, userIDs...)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to invite users to Slack channel", "channelID", channelID, "error", err)
		return fmt.Errorf("failed to invite users to Slack channel: %w", err)
	}
	return nil
}

func (s *SlackService) SetChannelTopic(ctx context.Context, channelID, topic string) error {
	_, err := s.userClient.SetTopicOfConversationContext(ctx, channelID, topic)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to set Slack channel topic", "channelID", channelID, "error", err)
		return fmt.Errorf("failed to set Slack channel topic: %w", err)
	}
	return nil
}

func (s *SlackService) PostMessage(ctx context.Context, channelID, fallback string, blocks []slack.Block) (string, error) {
	_, timestamp, err := s.botClient.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to post message to Slack channel", "channelID", channelID, "error", err)
		return "", fmt.Errorf("failed to post message to Slack channel: %w", err)
	}
	return timestamp, nil
}

// PostDirectMessage delivers a direct message by posting to the user's ID,
// which Slack resolves to the bot's DM channel with that user.
func (s *SlackService) PostDirectMessage(ctx context.Context, userID, text string) error {
	_, _, err := s.botClient.PostMessageContext(
		ctx,
		userID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to send direct message", "userID", userID, "error", err)
		return fmt.Errorf("failed to send direct message: %w", err)
	}
	return nil
}

func (s *SlackService) GroupMembers(ctx context.Context, groupID string) ([]string, error) {
	members, err := s.botClient.GetUserGroupMembersContext(ctx, groupID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list usergroup members", "groupID", groupID, "error", err)
		return nil, fmt.Errorf("failed to list usergroup members: %w", err)
	}
	return members, nil
}

func (s *SlackService) HealthCheck(ctx context.Context) error {
	_, err := s.botClient.AuthTestContext(ctx)
	if err != nil {
		return errors.New("slack API is unavailable")
	}
	return nil
}

// apiErrorReason extracts the application-level error string when err wraps
// an ok:false Slack response. Transport failures (timeouts, non-2xx,
// malformed JSON) report false.
func apiErrorReason(err error) (string, bool) {
	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr.Err, true
	}
	return "", false
}
