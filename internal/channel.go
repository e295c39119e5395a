package internal

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/slack-go/slack"
)

// ChannelProvisioner creates the dedicated public channel for an incident.
// The clock and suffix source are injectable so name generation is
// deterministic under test.
type ChannelProvisioner struct {
	api    SlackAPI
	now    func() time.Time
	suffix func() int
}

func NewChannelProvisioner(api SlackAPI) *ChannelProvisioner {
	return &ChannelProvisioner{
		api: api,
		now: time.Now,
		// 4-digit suffix disambiguates same-day incidents. Collisions are
		// possible and not handled.
		suffix: func() int { return 1000 + rand.IntN(9000) },
	}
}

// channelName yields incident-YYYY-MM-DD-NNNN with NNNN in [1000,9999].
func (p *ChannelProvisioner) channelName() string {
	return fmt.Sprintf("incident-%s-%d", p.now().Format("2006-01-02"), p.suffix())
}

// Provision creates the incident channel. Any failure here is fatal for the
// incident: nothing downstream can run without a channel.
func (p *ChannelProvisioner) Provision(ctx context.Context) (*slack.Channel, error) {
	channel, err := p.api.CreateChannel(ctx, p.channelName(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to create incident channel: %w", err)
	}
	return channel, nil
}
