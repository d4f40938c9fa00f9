package version

import "testing"

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default value")
	}
	// Commit, message and date are build-time ldflags and may stay empty.
	_ = GitCommit
	_ = GitMessage
	_ = BuildDate
}
