package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// IncidentService drives the incident declaration flow: open the declare
// modal on the slash command, and on submission create the channel, fan
// out invites/topic/notifications, then post the summary.
type IncidentService struct {
	provisioner *ChannelProvisioner
	membership  *MembershipManager
	topics      *TopicSetter
	notifier    *Notifier
	summary     *SummaryPoster
}

func NewIncidentService(api SlackAPI, config *Config) *IncidentService {
	return &IncidentService{
		provisioner: NewChannelProvisioner(api),
		membership:  NewMembershipManager(api, config),
		topics:      NewTopicSetter(api, config.DocURL),
		notifier:    NewNotifier(api),
		summary:     NewSummaryPoster(api),
	}
}

func (s *IncidentService) OpenDeclareModal(ctx context.Context, triggerID, reporterID string) error {
	modal := DeclareIncidentModal(reporterID)
	return s.provisioner.api.OpenView(ctx, triggerID, modal)
}

// DeclareIncident runs the provisioning sequence for one submitted
// incident. Channel creation is fatal; the invite, topic, and notification
// stages run concurrently and each failure is captured without cancelling
// its siblings. The summary posts only after every stage has settled, and
// the aggregated outcome is logged. Nothing is reported back to the
// webhook caller, which was acknowledged before processing began.
func (s *IncidentService) DeclareIncident(ctx context.Context, req IncidentRequest) (*Outcome, error) {
	channel, err := s.provisioner.Provision(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Incident channel creation failed, abandoning incident", "title", req.Title, "error", err)
		return nil, err
	}

	outcome := &Outcome{
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
	}

	results := make(chan StageResult, 4)
	var wg sync.WaitGroup
	run := func(stage func() StageResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- stage()
		}()
	}

	run(func() StageResult { return s.membership.Invite(ctx, channel.ID, req) })
	run(func() StageResult { return s.topics.Set(ctx, channel.ID, req) })
	if req.Commander != req.Reporter {
		run(func() StageResult { return s.notifier.NotifyRole(ctx, channel.ID, req.Commander, RoleCommander) })
	}
	if req.Comms != "" && req.Comms != req.Reporter {
		run(func() StageResult { return s.notifier.NotifyRole(ctx, channel.ID, req.Comms, RoleCommunications) })
	}

	wg.Wait()
	close(results)
	for result := range results {
		outcome.Stages = append(outcome.Stages, result)
	}

	outcome.Stages = append(outcome.Stages, s.summary.Post(ctx, req, channel.Name, channel.ID))

	s.logOutcome(ctx, req, outcome)
	return outcome, nil
}

func (s *IncidentService) logOutcome(ctx context.Context, req IncidentRequest, outcome *Outcome) {
	for _, stage := range outcome.Stages {
		if stage.OK {
			slog.InfoContext(ctx, "Incident stage completed", "channel", outcome.ChannelName, "stage", stage.Stage, "detail", stage.Detail)
		} else {
			slog.WarnContext(ctx, "Incident stage failed", "channel", outcome.ChannelName, "stage", stage.Stage, "detail", stage.Detail)
		}
	}
	slog.InfoContext(ctx, "Incident channel is set up and ready for use",
		"channel", outcome.ChannelName,
		"channelID", outcome.ChannelID,
		"title", req.Title,
		"failedStages", fmt.Sprintf("%d/%d", len(outcome.Failures()), len(outcome.Stages)))
}
