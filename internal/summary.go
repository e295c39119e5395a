package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

const summaryFallbackText = ":rotating_light: An Incident has been declared!"

// SummaryPoster composes and posts the structured incident summary into
// the new channel.
type SummaryPoster struct {
	api SlackAPI
	now func() time.Time
}

func NewSummaryPoster(api SlackAPI) *SummaryPoster {
	return &SummaryPoster{
		api: api,
		now: time.Now,
	}
}

// Blocks builds the summary in a fixed order: header, StatusPage reminder,
// role fields, channel/title fields, start timestamp, and the description
// last, only when one was provided.
func (s *SummaryPoster) Blocks(req IncidentRequest, channelName, channelID string) []slack.Block {
	headerText := slack.NewTextBlockObject("mrkdwn",
		fmt.Sprintf("*[%s] An Incident has been opened by <@%s>*", channelName, req.Reporter), false, false)
	headerSection := slack.NewSectionBlock(headerText, nil, nil)

	reminderText := slack.NewTextBlockObject("mrkdwn", ":bangbang: *Remember to Update the StatusPage* :bangbang:", false, false)
	reminderSection := slack.NewSectionBlock(reminderText, nil, nil)

	comms := "unassigned"
	if req.Comms != "" {
		comms = fmt.Sprintf("<@%s>", req.Comms)
	}
	roleFields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Commander*\n<@%s>\n", req.Commander), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Communications*\n%s\n", comms), false, false),
	}
	roleSection := slack.NewSectionBlock(nil, roleFields, nil)

	channelFields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Channel*\n<#%s>\n", channelID), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Title*\n%s\n", req.Title), false, false),
	}
	channelSection := slack.NewSectionBlock(nil, channelFields, nil)

	// Slack renders the date token in the viewer's locale; the raw unix
	// timestamp is the fallback.
	started := s.now().Unix()
	startedFields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("*Incident started*\n<!date^%d^{date_short} at {time_secs}|%d>", started, started), false, false),
	}
	startedSection := slack.NewSectionBlock(nil, startedFields, nil)

	blocks := []slack.Block{
		headerSection,
		reminderSection,
		roleSection,
		channelSection,
		startedSection,
	}

	if req.Description != "" {
		descriptionText := slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Description*\n%s", req.Description), false, false)
		blocks = append(blocks, slack.NewSectionBlock(descriptionText, nil, nil))
	}

	return blocks
}

// Post sends the summary once. Failure is non-fatal and reported as a
// stage result.
func (s *SummaryPoster) Post(ctx context.Context, req IncidentRequest, channelName, channelID string) StageResult {
	blocks := s.Blocks(req, channelName, channelID)
	if _, err := s.api.PostMessage(ctx, channelID, summaryFallbackText, blocks); err != nil {
		if reason, ok := apiErrorReason(err); ok {
			return StageResult{Stage: StageSummary, OK: false, Detail: "incident details message failed to send. Reason: " + reason}
		}
		return StageResult{Stage: StageSummary, OK: false, Detail: "incident details message failed to send: " + err.Error()}
	}
	return StageResult{Stage: StageSummary, OK: true, Detail: "incident details message sent to the incident channel"}
}
