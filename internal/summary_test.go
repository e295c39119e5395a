package internal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarySectionText(t *testing.T, block slack.Block) string {
	t.Helper()
	section, ok := block.(*slack.SectionBlock)
	require.True(t, ok, "summary blocks are all section blocks")
	if section.Text != nil {
		return section.Text.Text
	}
	var texts string
	for _, field := range section.Fields {
		texts += field.Text
	}
	return texts
}

func TestSummaryBlocksOrder(t *testing.T) {
	poster := NewSummaryPoster(newFakeSlackAPI())
	poster.now = func() time.Time { return time.Unix(1709823845, 0) }

	blocks := poster.Blocks(IncidentRequest{
		Reporter:    "U1",
		Commander:   "U2",
		Comms:       "U3",
		Title:       "Checkout latency",
		Description: "p99 above 5s since 14:00",
	}, "incident-2024-03-07-4821", "C123")

	require.Len(t, blocks, 6)
	assert.Equal(t, "*[incident-2024-03-07-4821] An Incident has been opened by <@U1>*", summarySectionText(t, blocks[0]))
	assert.Equal(t, ":bangbang: *Remember to Update the StatusPage* :bangbang:", summarySectionText(t, blocks[1]))
	assert.Contains(t, summarySectionText(t, blocks[2]), "*Commander*\n<@U2>")
	assert.Contains(t, summarySectionText(t, blocks[2]), "*Communications*\n<@U3>")
	assert.Contains(t, summarySectionText(t, blocks[3]), "*Channel*\n<#C123>")
	assert.Contains(t, summarySectionText(t, blocks[3]), "*Title*\nCheckout latency")
	assert.Equal(t,
		fmt.Sprintf("*Incident started*\n<!date^%d^{date_short} at {time_secs}|%d>", 1709823845, 1709823845),
		summarySectionText(t, blocks[4]))
	assert.Equal(t, "*Description*\np99 above 5s since 14:00", summarySectionText(t, blocks[5]))
}

func TestSummaryBlocksNoDescription(t *testing.T) {
	poster := NewSummaryPoster(newFakeSlackAPI())

	blocks := poster.Blocks(IncidentRequest{
		Reporter:  "U1",
		Commander: "U2",
		Title:     "Checkout latency",
	}, "incident-2024-03-07-4821", "C123")

	require.Len(t, blocks, 5)
	for _, block := range blocks {
		assert.NotContains(t, summarySectionText(t, block), "*Description*")
	}
}

func TestSummaryBlocksUnassignedComms(t *testing.T) {
	poster := NewSummaryPoster(newFakeSlackAPI())

	blocks := poster.Blocks(IncidentRequest{
		Reporter:  "U1",
		Commander: "U2",
		Title:     "Checkout latency",
	}, "incident-2024-03-07-4821", "C123")

	assert.Contains(t, summarySectionText(t, blocks[2]), "*Communications*\nunassigned")
}

func TestSummaryPostSendsOnce(t *testing.T) {
	api := newFakeSlackAPI()
	poster := NewSummaryPoster(api)

	result := poster.Post(context.Background(), IncidentRequest{
		Reporter:  "U1",
		Commander: "U2",
		Title:     "Checkout latency",
	}, "incident-2024-03-07-4821", "C123")

	assert.True(t, result.OK)
	require.Len(t, api.postCalls, 1)
	assert.Equal(t, "C123", api.postCalls[0].channelID)
	assert.Equal(t, summaryFallbackText, api.postCalls[0].fallback)
}

func TestSummaryPostFailureIsNonFatal(t *testing.T) {
	api := newFakeSlackAPI()
	api.postErr = slack.SlackErrorResponse{Err: "msg_too_long"}
	poster := NewSummaryPoster(api)

	result := poster.Post(context.Background(), IncidentRequest{
		Reporter:  "U1",
		Commander: "U2",
	}, "incident-2024-03-07-4821", "C123")

	assert.False(t, result.OK)
	assert.Equal(t, StageSummary, result.Stage)
	assert.Contains(t, result.Detail, "msg_too_long")
}
