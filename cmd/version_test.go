package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVersion(t *testing.T) {
	withModule := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}}, true
	}
	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name    string
		stamped string
		info    func() (*debug.BuildInfo, bool)
		want    string
	}{
		{"stamped wins", "v1.0.0", withModule, "v1.0.0"},
		{"module version", "", withModule, "v0.3.0"},
		{"no build info", "", noInfo, "(devel)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveVersion(tt.stamped, tt.info))
		})
	}
}

func TestVersionShort(t *testing.T) {
	saved := buildVersion
	buildVersion = "v9.9.9"
	t.Cleanup(func() { buildVersion = saved })

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })
	require.NoError(t, versionCmd.Flags().Set("short", "true"))
	t.Cleanup(func() { _ = versionCmd.Flags().Set("short", "false") })

	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "v9.9.9\n", out.String())
}
