package launcher

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"jarvis/clients"
)

// appAliases maps the friendly names users say to the program that should be
// launched. Anything not listed is attempted as a literal program name.
var appAliases = map[string]string{
	"chrome":             "chrome",
	"google chrome":      "chrome",
	"firefox":            "firefox",
	"edge":               "msedge",
	"microsoft edge":     "msedge",
	"notepad":            "notepad",
	"calculator":         "calc",
	"calc":               "calc",
	"paint":              "mspaint",
	"explorer":           "explorer",
	"file explorer":      "explorer",
	"cmd":                "cmd",
	"command prompt":     "cmd",
	"powershell":         "powershell",
	"task manager":       "taskmgr",
	"control panel":      "control",
	"spotify":            "spotify",
	"vscode":             "code",
	"visual studio code": "code",
	"word":               "winword",
	"excel":              "excel",
	"powerpoint":         "powerpnt",
	"outlook":            "outlook",
}

// LauncherClient implements the clients.LauncherClient interface by spawning
// local processes.
type LauncherClient struct {
	goos string
}

func NewLauncherClient() *LauncherClient {
	return &LauncherClient{goos: runtime.GOOS}
}

// OpenApp launches the named application without waiting for it to exit.
func (c *LauncherClient) OpenApp(ctx context.Context, name string) (*clients.LaunchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("application name is required")
	}

	argv := c.resolveCommand(name)
	log.Printf("📋 Launching application %q as %v", name, argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	// Detach: reap the process in the background so it never zombies.
	go func() { _ = cmd.Wait() }()

	return &clients.LaunchResult{
		Message: fmt.Sprintf("Opened %s", name),
		App:     name,
	}, nil
}

// resolveCommand maps a friendly application name to the argv used to launch
// it on the current platform.
func (c *LauncherClient) resolveCommand(name string) []string {
	program := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := appAliases[program]; ok {
		program = alias
	}

	switch c.goos {
	case "windows":
		// "start" is a cmd builtin; the empty string is the window title slot.
		return []string{"cmd", "/C", "start", "", program}
	case "darwin":
		return []string{"open", "-a", program}
	default:
		return []string{program}
	}
}

// AvailableApps lists the friendly names the launcher knows about.
func (c *LauncherClient) AvailableApps() []string {
	apps := make([]string, 0, len(appAliases))
	for name := range appAliases {
		apps = append(apps, name)
	}
	sort.Strings(apps)
	return apps
}
