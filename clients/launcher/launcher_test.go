package launcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		app      string
		expected []string
	}{
		{
			name:     "alias on windows",
			goos:     "windows",
			app:      "Visual Studio Code",
			expected: []string{"cmd", "/C", "start", "", "code"},
		},
		{
			name:     "alias on darwin",
			goos:     "darwin",
			app:      "calculator",
			expected: []string{"open", "-a", "calc"},
		},
		{
			name:     "unknown app passes through on linux",
			goos:     "linux",
			app:      "gimp",
			expected: []string{"gimp"},
		},
		{
			name:     "alias lookup is case insensitive",
			goos:     "linux",
			app:      "  CHROME ",
			expected: []string{"chrome"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &LauncherClient{goos: tt.goos}
			assert.Equal(t, tt.expected, c.resolveCommand(tt.app))
		})
	}
}

func TestOpenAppRequiresName(t *testing.T) {
	c := NewLauncherClient()
	_, err := c.OpenApp(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application name is required")
}

func TestAvailableApps(t *testing.T) {
	apps := NewLauncherClient().AvailableApps()
	require.NotEmpty(t, apps)
	assert.Contains(t, apps, "notepad")
	assert.Contains(t, apps, "spotify")
	// sorted for stable output
	for i := 1; i < len(apps); i++ {
		assert.LessOrEqual(t, apps[i-1], apps[i])
	}
}
