/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package notify posts match results to a Discord channel webhook.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// discord rejects webhook messages longer than this
const maxMessageLen = 2000

// webhookExecutor is the part of *discordgo.Session used to post messages.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool,
		data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Discord struct {
	session   webhookExecutor
	webhookID string
	token     string
}

// NewDiscord returns a Discord notifier for a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>.
func NewDiscord(webhookURL string, userAgent string) (*Discord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	// webhooks authenticate with their token, no bot token needed
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.UserAgent = userAgent

	return &Discord{
		session:   session,
		webhookID: id,
		token:     token,
	}, nil
}

func (d *Discord) Announce(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen-3] + "..."
	}

	_, err := d.session.WebhookExecute(d.webhookID, d.token, false,
		&discordgo.WebhookParams{
			Content: msg,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		})
	if err != nil {
		return fmt.Errorf("failed to post to discord webhook: %w", err)
	}

	return nil
}

// ParseWebhookURL splits a discord webhook URL into its id and token.
func ParseWebhookURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "https" {
		return "", "", fmt.Errorf("invalid webhook url %q: must be https", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// api/webhooks/<id>/<token>, optionally api/v10/webhooks/...
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] != "webhooks" {
			continue
		}
		id, token := parts[i+1], parts[i+2]
		if id == "" || token == "" || i+3 != len(parts) {
			break
		}
		return id, token, nil
	}

	return "", "", fmt.Errorf("invalid webhook url %q: expected .../webhooks/<id>/<token>",
		raw)
}
