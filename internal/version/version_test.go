package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, IsRelease(), info.Release)
}

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name     string
		info     BuildInfo
		contains []string
		excludes []string
	}{
		{
			name:     "development build",
			info:     BuildInfo{Version: "dev", BuildDate: unknownValue, GitCommit: unknownValue, GoVersion: "go1.24.4"},
			contains: []string{"salesinsight dev (development build)", "Go Version: go1.24.4"},
			excludes: []string{"Build Date", "Git Commit"},
		},
		{
			name: "release build",
			info: BuildInfo{
				Version:   "v1.2.0",
				BuildDate: "2026-10-01T12:00:00Z",
				GitCommit: "0123456789abcdef-dirty",
				GoVersion: "go1.24.4",
				Module:    "github.com/paveg/salesinsight",
				Dirty:     true,
				Release:   true,
			},
			excludes: []string{"development build"},
			contains: []string{"salesinsight v1.2.0", "Build Date: 2026-10-01T12:00:00Z", "Git Commit: 0123456 (dirty)", "Module: github.com/paveg/salesinsight"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.info.String()
			for _, c := range tt.contains {
				assert.Contains(t, s, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, s, e)
			}
		})
	}
}

func TestIsRelease(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	for version, want := range map[string]bool{"dev": false, "v1.0.0": true, "v1.1.0-rc.1": false} {
		Version = version
		assert.Equal(t, want, IsRelease(), version)
	}
}
