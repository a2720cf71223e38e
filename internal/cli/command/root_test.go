package command

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/pkg/sntoken"
)

// testApp returns an App wired to a buffer, with exit handling
// neutralized so cli.Exit errors surface instead of killing the test.
func testApp() (*cli.App, *bytes.Buffer) {
	app := App()
	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &buf
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app, &buf
}

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}
	if app.Name != "snotify-cli" {
		t.Errorf("Name = %q, want %q", app.Name, "snotify-cli")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"launch", "complete", "monitor", "token", "history"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"config", "display", "output", "log-level", "log-format", "verbose"} {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}

func TestTokenNew(t *testing.T) {
	app, buf := testApp()
	if err := app.Run([]string{"snotify-cli", "token", "new"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	token := strings.TrimSpace(buf.String())
	if _, _, err := sntoken.Parse(token); err != nil {
		t.Errorf("generated token %q does not parse: %v", token, err)
	}
}

func TestTokenParse_JSON(t *testing.T) {
	app, buf := testApp()
	args := []string{"snotify-cli", "--output", "json", "token", "parse", "host99_TIME42"}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got struct {
		Token     string `json:"token"`
		Launcher  string `json:"launcher"`
		Timestamp uint32 `json:"timestamp"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.Launcher != "host99" || got.Timestamp != 42 {
		t.Errorf("parsed %+v, want launcher host99 timestamp 42", got)
	}
}

func TestTokenParse_Text(t *testing.T) {
	app, buf := testApp()
	if err := app.Run([]string{"snotify-cli", "token", "parse", "host99_TIME42"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "host99") || !strings.Contains(out, "42") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestTokenParse_Malformed(t *testing.T) {
	app, _ := testApp()
	if err := app.Run([]string{"snotify-cli", "token", "parse", "no-marker"}); err == nil {
		t.Error("expected error for token without _TIME marker")
	}
}

func TestLaunch_NoArgs(t *testing.T) {
	app, _ := testApp()
	if err := app.Run([]string{"snotify-cli", "launch"}); err == nil {
		t.Error("expected error when COMMAND is missing")
	}
}

func TestComplete_NoArgs(t *testing.T) {
	app, _ := testApp()
	if err := app.Run([]string{"snotify-cli", "complete"}); err == nil {
		t.Error("expected error when TOKEN is missing")
	}
}

func TestSetup_VerboseOverridesLevel(t *testing.T) {
	app, _ := testApp()
	var seen string
	app.Commands = append(app.Commands, &cli.Command{
		Name: "probe",
		Action: func(c *cli.Context) error {
			seen = appConfig(c).LogLevel
			return nil
		},
	})
	if err := app.Run([]string{"snotify-cli", "--log-level", "warn", "-V", "probe"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen != "debug" {
		t.Errorf("LogLevel = %q, want debug with -V", seen)
	}
}
