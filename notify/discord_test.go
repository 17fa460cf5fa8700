/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookURL(t *testing.T) {
	tests := []struct {
		url     string
		id      string
		token   string
		wantErr bool
	}{
		{url: "https://discord.com/api/webhooks/123/abc", id: "123", token: "abc"},
		{url: "https://discord.com/api/v10/webhooks/123/abc/", id: "123", token: "abc"},
		{url: "http://discord.com/api/webhooks/123/abc", wantErr: true},
		{url: "https://discord.com/api/webhooks/123", wantErr: true},
		{url: "https://discord.com/api/webhooks/123/abc/github", wantErr: true},
		{url: "https://discord.com/api/channels/123/abc", wantErr: true},
		{url: "::not a url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, token, err := ParseWebhookURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.token, token)
		})
	}
}

type fakeWebhook struct {
	id, token string
	params    *discordgo.WebhookParams
	err       error
}

func (f *fakeWebhook) WebhookExecute(webhookID, token string, wait bool,
	data *discordgo.WebhookParams,
	options ...discordgo.RequestOption) (*discordgo.Message, error) {

	f.id, f.token, f.params = webhookID, token, data
	return nil, f.err
}

func TestAnnounce(t *testing.T) {
	fake := &fakeWebhook{}
	d := &Discord{session: fake, webhookID: "123", token: "abc"}

	require.NoError(t, d.Announce(context.Background(), "alice beat bob"))
	assert.Equal(t, "123", fake.id)
	assert.Equal(t, "abc", fake.token)
	assert.Equal(t, "alice beat bob", fake.params.Content)
	assert.Empty(t, fake.params.AllowedMentions.Parse)

	require.NoError(t, d.Announce(context.Background(), strings.Repeat("x", 5000)))
	assert.Len(t, fake.params.Content, maxMessageLen)

	fake.err = errors.New("rate limited")
	assert.Error(t, d.Announce(context.Background(), "hi"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Announce(ctx, "hi"), context.Canceled)
}

func TestNewDiscordRejectsBadURL(t *testing.T) {
	_, err := NewDiscord("https://example.com/nope", "ua")
	assert.Error(t, err)
}
