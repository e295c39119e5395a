package internal

import (
	"bytes"
	"context"
	"crypto/hmac"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// verifyWebhook checks the shared-secret verification token carried in the
// webhook body. It must pass before any outbound call is issued.
func verifyWebhook(config *Config, token string) bool {
	if token == "" {
		return false
	}
	return hmac.Equal([]byte(token), []byte(config.VerificationToken))
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func HealthHandler(checker healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		err := checker.HealthCheck(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"slack":  "unavailable",
				"error":  err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"slack":  "available",
		})
	}
}

// IncidentCommandHandler receives the /incident slash command. The webhook
// is acknowledged with an empty 200 and the modal opens in the background;
// Slack only allows a few seconds for the acknowledgment.
func IncidentCommandHandler(config *Config, incidentService *IncidentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SlackCommandRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}

		if !verifyWebhook(config, req.Token) {
			slog.Warn("Rejected slash command with invalid verification token", "userID", req.UserId)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.Status(http.StatusOK)

		// The request context dies with the acknowledgment; processing
		// continues on its own context.
		go func() {
			ctx := context.Background()
			if err := incidentService.OpenDeclareModal(ctx, req.TriggerId, req.UserId); err != nil {
				slog.ErrorContext(ctx, "Failed to open incident modal", "userID", req.UserId, "error", err)
			}
		}()
	}
}

// InteractionHandler receives the submitted declare-incident form. The
// webhook is acknowledged immediately; provisioning runs in the background
// and its outcome is observable only in the server logs.
func InteractionHandler(config *Config, incidentService *IncidentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to read request body in InteractionHandler", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		parsedForm, err := url.ParseQuery(string(bodyBytes))
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to parse form data from request body", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed form data"})
			return
		}

		payloadFormParam := parsedForm.Get("payload")
		if payloadFormParam == "" {
			slog.ErrorContext(c.Request.Context(), "Missing 'payload' in form data for interaction")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payload in form data"})
			return
		}

		var interaction slack.InteractionCallback
		if err := json.Unmarshal([]byte(payloadFormParam), &interaction); err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to unmarshal interaction callback from payload", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interaction payload format"})
			return
		}

		if !verifyWebhook(config, interaction.Token) {
			slog.Warn("Rejected interaction with invalid verification token", "userID", interaction.User.ID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if interaction.Type != slack.InteractionTypeViewSubmission ||
			interaction.View.CallbackID != declareIncidentCallbackID {
			c.Status(http.StatusOK)
			return
		}

		req := incidentRequestFromInteraction(interaction)

		c.Status(http.StatusOK)

		go func() {
			ctx := context.Background()
			if _, err := incidentService.DeclareIncident(ctx, req); err != nil {
				slog.ErrorContext(ctx, "Incident declaration failed", "title", req.Title, "error", err)
			}
		}()
	}
}

func incidentRequestFromInteraction(interaction slack.InteractionCallback) IncidentRequest {
	if interaction.View.State == nil {
		return IncidentRequest{Reporter: interaction.User.ID}
	}
	values := interaction.View.State.Values
	return IncidentRequest{
		Reporter:    interaction.User.ID,
		Commander:   values["commander"]["commander"].SelectedUser,
		Comms:       values["comms"]["comms"].SelectedUser,
		Title:       values["title"]["title"].Value,
		Description: values["description"]["description"].Value,
	}
}
