package internal

// IncidentRequest is the parsed declare-incident form submission. It is
// built once per incident and never mutated.
type IncidentRequest struct {
	Reporter    string
	Commander   string
	Comms       string
	Title       string
	Description string
}

type Stage string

const (
	StageInvite          Stage = "invite"
	StageTopic           Stage = "topic"
	StageNotifyCommander Stage = "notify_commander"
	StageNotifyComms     Stage = "notify_communications"
	StageSummary         Stage = "summary"
)

// StageResult is the settled outcome of one provisioning sub-task. Failed
// stages carry a human-readable reason instead of an error so that one
// stage's failure never interrupts its siblings.
type StageResult struct {
	Stage  Stage
	OK     bool
	Detail string
}

// Outcome aggregates every stage result for one declared incident.
type Outcome struct {
	ChannelID   string
	ChannelName string
	Stages      []StageResult
}

// Failures returns the results of the stages that did not succeed.
func (o *Outcome) Failures() []StageResult {
	var failed []StageResult
	for _, stage := range o.Stages {
		if !stage.OK {
			failed = append(failed, stage)
		}
	}
	return failed
}

type SlackCommandRequest struct {
	Token               string `form:"token" json:"token"`
	TeamId              string `form:"team_id" json:"team_id"`
	TeamDomain          string `form:"team_domain" json:"team_domain"`
	ChannelId           string `form:"channel_id" json:"channel_id"`
	ChannelName         string `form:"channel_name" json:"channel_name"`
	UserId              string `form:"user_id" json:"user_id"`
	UserName            string `form:"user_name" json:"user_name"`
	Command             string `form:"command" json:"command"`
	Text                string `form:"text" json:"text"`
	ApiAppId            string `form:"api_app_id" json:"api_app_id"`
	IsEnterpriseInstall bool   `form:"is_enterprise_install" json:"is_enterprise_install"`
	ResponseUrl         string `form:"response_url" json:"response_url"`
	TriggerId           string `form:"trigger_id" json:"trigger_id"`
}
