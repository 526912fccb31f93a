package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "relcollect" {
		t.Errorf("CLIName() = %q, want %q", got, "relcollect")
	}
	if got := ConfigFile(); got != "relcollect.yaml" {
		t.Errorf("ConfigFile() = %q, want %q", got, "relcollect.yaml")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"project_root", "RELCOLLECT_PROJECT_ROOT"},
		{"LOG_LEVEL", "RELCOLLECT_LOG_LEVEL"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}
