package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"auth": map[string]any{
			"verifyPasswords": true,
			"sessionTTL":      "24h",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"session": "",
		},
		"media": map[string]any{
			"placeholderImage": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "AUTH_VERIFYPASSWORDS", want: "auth.verifyPasswords"},
		{envKey: "AUTH_SESSIONTTL", want: "auth.sessionTTL"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "MEDIA_PLACEHOLDERIMAGE", want: "media.placeholderImage"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestNew_LoadsYAMLAndEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_VERIFYPASSWORDS", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "minex", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Auth)
	assert.False(t, cfg.Auth.VerifyPasswords)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Auth)
	assert.True(t, cfg.Auth.VerifyPasswords)
	assert.Equal(t, defaultMinPasswordLength, cfg.Auth.MinPasswordLength)
	assert.Equal(t, defaultSessionTTL, cfg.Auth.SessionTTL)
	assert.Equal(t, defaultPlaceholderImage, cfg.Media.PlaceholderImage)
	assert.NotNil(t, cfg.Seed)
	assert.NotNil(t, cfg.PubSub)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}
