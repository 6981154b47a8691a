package stripe

import (
	"context"
	"testing"

	"github.com/farhxn/foodcourt-backend/pkg/config"
)

func TestNewClientValidatesKeyPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     config.StripeConfig
		wantErr bool
	}{
		{"test key in test env", config.StripeConfig{APIKey: "sk_test_123", Env: "test"}, false},
		{"live key in test env", config.StripeConfig{APIKey: "sk_live_123", Env: "test"}, true},
		{"live key in live env", config.StripeConfig{APIKey: "sk_live_123", Env: "live"}, false},
		{"missing key", config.StripeConfig{Env: "test"}, true},
		{"bad env", config.StripeConfig{APIKey: "sk_test_123", Env: "staging"}, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(context.Background(), tc.cfg, nil)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewClient error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewClientDefaultsEnvToTest(t *testing.T) {
	t.Parallel()

	client, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_123", APIVersion: "2023-10-16"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("expected test env, got %q", client.Environment())
	}
	if client.APIVersion() != "2023-10-16" {
		t.Fatalf("unexpected api version %q", client.APIVersion())
	}
}
