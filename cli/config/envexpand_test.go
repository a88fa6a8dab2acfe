package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("PC_SET", "real")
	t.Setenv("PC_EMPTY", "")
	t.Setenv("PC_HOST", "redis.internal")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "url: ${PC_SET}", "url: real"},
		{"unset variable", "url: ${PC_UNSET_12345}", "url: "},
		{"default when unset", "url: ${PC_UNSET_12345:-fallback}", "url: fallback"},
		{"default ignored when set", "url: ${PC_SET:-fallback}", "url: real"},
		{"default when empty", "url: ${PC_EMPTY:-fallback}", "url: fallback"},
		{"empty default", "url: ${PC_UNSET_12345:-}", "url: "},
		{"several", "redis://${PC_HOST}:${PC_PORT_UNSET:-6379}/0", "redis://redis.internal:6379/0"},
		{"no pattern", "strict: true", "strict: true"},
		{"bare dollar untouched", "cost: $5 and $PC_SET", "cost: $5 and $PC_SET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
