package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"session":     "",
			"modelApiKey": "",
		},
		"auth": map[string]any{
			"secondFactorTTL": "5m",
		},
		"mail": map[string]any{
			"sendgrid": map[string]any{
				"apiKey": "",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "SECRETKEY_MODELAPIKEY", want: "secretKey.modelApiKey"},
		{envKey: "AUTH_SECONDFACTORTTL", want: "auth.secondFactorTTL"},
		{envKey: "MAIL_SENDGRID_APIKEY", want: "mail.sendgrid.apiKey"},
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
