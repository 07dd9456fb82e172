package config

import "testing"

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(New())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.RedisHost != "localhost" || s.RedisPort != 6379 || s.Namespace != "rsmq" {
		t.Fatalf("LoadSettings: unexpected defaults %+v", s)
	}
	if s.Realtime {
		t.Fatalf("LoadSettings: expected realtime=false by default")
	}
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("RSMQ_REDIS_HOST", "redis.internal")
	t.Setenv("RSMQ_REDIS_PORT", "7000")
	t.Setenv("RSMQ_NAMESPACE", "orders")

	s, err := LoadSettings(New().WithEnvPrefix("RSMQ"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.RedisHost != "redis.internal" || s.RedisPort != 7000 || s.Namespace != "orders" {
		t.Fatalf("LoadSettings: unexpected overrides %+v", s)
	}
}
