package internal

import (
	"context"
	"sync"

	"github.com/slack-go/slack"
)

type directMessage struct {
	userID string
	text   string
}

type postedMessage struct {
	channelID string
	fallback  string
	blocks    []slack.Block
}

// fakeSlackAPI records every outbound call and returns the configured
// channel, members, and errors.
type fakeSlackAPI struct {
	mu sync.Mutex

	channel      *slack.Channel
	groupMembers []string

	openViewErr error
	createErr   error
	inviteErr   error
	topicErr    error
	postErr     error
	dmErr       error
	groupErr    error

	openViewCalls []slack.ModalViewRequest
	createCalls   []string
	inviteCalls   [][]string
	topicCalls    []string
	postCalls     []postedMessage
	dmCalls       []directMessage
	groupCalls    []string
}

func newFakeSlackAPI() *fakeSlackAPI {
	return &fakeSlackAPI{
		channel: &slack.Channel{
			GroupConversation: slack.GroupConversation{
				Conversation: slack.Conversation{ID: "C123"},
				Name:         "incident-2024-03-07-4821",
			},
		},
	}
}

func (f *fakeSlackAPI) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openViewCalls = append(f.openViewCalls, view)
	return f.openViewErr
}

func (f *fakeSlackAPI) CreateChannel(ctx context.Context, name string, isPrivate bool) (*slack.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.channel, nil
}

func (f *fakeSlackAPI) InviteUsersToChannel(ctx context.Context, channelID string, userIDs ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inviteCalls = append(f.inviteCalls, userIDs)
	return f.inviteErr
}

func (f *fakeSlackAPI) SetChannelTopic(ctx context.Context, channelID, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topicCalls = append(f.topicCalls, topic)
	return f.topicErr
}

func (f *fakeSlackAPI) PostMessage(ctx context.Context, channelID, fallback string, blocks []slack.Block) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postCalls = append(f.postCalls, postedMessage{channelID: channelID, fallback: fallback, blocks: blocks})
	if f.postErr != nil {
		return "", f.postErr
	}
	return "1700000000.000100", nil
}

func (f *fakeSlackAPI) PostDirectMessage(ctx context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dmCalls = append(f.dmCalls, directMessage{userID: userID, text: text})
	return f.dmErr
}

func (f *fakeSlackAPI) GroupMembers(ctx context.Context, groupID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupCalls = append(f.groupCalls, groupID)
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return f.groupMembers, nil
}

// totalCalls reports every outbound Slack call the fake has seen.
func (f *fakeSlackAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.openViewCalls) + len(f.createCalls) + len(f.inviteCalls) +
		len(f.topicCalls) + len(f.postCalls) + len(f.dmCalls) + len(f.groupCalls)
}
