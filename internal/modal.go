package internal

import (
	"github.com/slack-go/slack"
)

const declareIncidentCallbackID = "declare_incident_modal"

// DeclareIncidentModal builds the modal opened by the /incident slash
// command. The commander select is pre-filled with the invoking user.
func DeclareIncidentModal(reporterID string) slack.ModalViewRequest {
	titleText := slack.NewTextBlockObject("plain_text", "Create an Incident", false, false)
	closeText := slack.NewTextBlockObject("plain_text", "Cancel", false, false)
	submitText := slack.NewTextBlockObject("plain_text", "Create", false, false)

	incidentTitleLabel := slack.NewTextBlockObject("plain_text", "Incident Title", false, false)
	incidentTitlePlaceholder := slack.NewTextBlockObject("plain_text", "Enter a title for this incident", false, false)
	incidentTitleElement := slack.NewPlainTextInputBlockElement(incidentTitlePlaceholder, "title")
	incidentTitle := slack.NewInputBlock("title", incidentTitleLabel, nil, incidentTitleElement)

	descriptionLabel := slack.NewTextBlockObject("plain_text", "Description", false, false)
	descriptionPlaceholder := slack.NewTextBlockObject("plain_text", "Enter a description of the incident...", false, false)
	descriptionElement := slack.NewPlainTextInputBlockElement(descriptionPlaceholder, "description")
	descriptionElement.Multiline = true
	description := slack.NewInputBlock("description", descriptionLabel, nil, descriptionElement)
	description.Optional = true

	commanderLabel := slack.NewTextBlockObject("plain_text", "Incident Commander", false, false)
	commanderPlaceholder := slack.NewTextBlockObject("plain_text", "Select the Incident Commander", false, false)
	commanderElement := &slack.SelectBlockElement{
		Type:        "users_select",
		Placeholder: commanderPlaceholder,
		ActionID:    "commander",
		InitialUser: reporterID,
	}
	commander := slack.NewInputBlock("commander", commanderLabel, nil, commanderElement)

	commsLabel := slack.NewTextBlockObject("plain_text", "Incident Communications", false, false)
	commsPlaceholder := slack.NewTextBlockObject("plain_text", "Select the Incident Communications", false, false)
	commsElement := &slack.SelectBlockElement{
		Type:        "users_select",
		Placeholder: commsPlaceholder,
		ActionID:    "comms",
	}
	comms := slack.NewInputBlock("comms", commsLabel, nil, commsElement)
	comms.Optional = true

	blocks := slack.Blocks{
		BlockSet: []slack.Block{
			incidentTitle,
			description,
			commander,
			comms,
		},
	}

	var modalRequest slack.ModalViewRequest
	modalRequest.Type = slack.ViewType("modal")
	modalRequest.Title = titleText
	modalRequest.Close = closeText
	modalRequest.Submit = submitText
	modalRequest.Blocks = blocks
	modalRequest.CallbackID = declareIncidentCallbackID

	return modalRequest
}
