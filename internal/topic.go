package internal

import (
	"context"
	"fmt"
)

// TopicSetter writes the commander/comms mentions and the incident doc
// link into the channel topic.
type TopicSetter struct {
	api    SlackAPI
	docURL string
}

func NewTopicSetter(api SlackAPI, docURL string) *TopicSetter {
	return &TopicSetter{
		api:    api,
		docURL: docURL,
	}
}

func (t *TopicSetter) Topic(req IncidentRequest) string {
	topic := fmt.Sprintf("Commander: <@%s>", req.Commander)
	if req.Comms != "" {
		topic += fmt.Sprintf(" Comms: <@%s>", req.Comms)
	}
	topic += " Incident Doc: " + t.docURL
	return topic
}

// Set issues one setTopic call. Never retried; failure is non-fatal.
func (t *TopicSetter) Set(ctx context.Context, channelID string, req IncidentRequest) StageResult {
	if err := t.api.SetChannelTopic(ctx, channelID, t.Topic(req)); err != nil {
		if reason, ok := apiErrorReason(err); ok {
			return StageResult{Stage: StageTopic, OK: false, Detail: "setting the channel topic failed. Reason: " + reason}
		}
		return StageResult{Stage: StageTopic, OK: false, Detail: "setting the channel topic failed: " + err.Error()}
	}
	return StageResult{Stage: StageTopic, OK: true, Detail: "the channel topic was set"}
}
