package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	router "todo/internal/http"
	"todo/internal/http/handlers"
	"todo/internal/repository"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.YAMLFile), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpDoesNotOpenBackend(t *testing.T) {
	calls := 0
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		calls++
		return testutil.NewFakeService(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	stdout, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if calls != 0 {
		t.Errorf("expected factory not to be called, got %d calls", calls)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--filter")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -filter\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsAll(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	svc := testutil.NewFakeService()
	svc.AddTask("abcd1234", "Buy milk", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Buy milk\n1 active, 0 completed tasks\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("disk on fire")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: disk on fire\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "storage:\n  driver: floppy\n")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "storage.driver") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDefaultFactory_SQLitePersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.DefaultFactory)

	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "Buy eggs"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, stderr, code := run(t, dispatcher, "toggle", "--config", dir, "2"); code != exitcode.Success {
		t.Fatalf("toggle failed: %d %q", code, stderr)
	}

	stdout, _, code := run(t, dispatcher, "list", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("list failed: %d", code)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Buy eggs\n1 active, 1 completed tasks\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	if _, err := os.Stat(filepath.Join(dir, config.DatabaseFile)); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}

func TestDefaultFactory_Latency(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "storage:\n  driver: sqlite\nlatency:\n  delays:\n    add: 5ms\n")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.DefaultFactory)

	if _, stderr, code := run(t, dispatcher, "add", "--latency", "--config", dir, "slow"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}

	stdout, _, _ := run(t, dispatcher, "list", "--quiet", "--config", dir)
	if stdout != "   1  [ ] slow\n" {
		t.Errorf("unexpected list %q", stdout)
	}
}

func TestDefaultFactory_Remote(t *testing.T) {
	sess, err := service.Open(context.Background(), repository.NewMemory(nil), nil, nil)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	srv := httptest.NewServer(router.New(handlers.New(sess, nil), "s3cret", nil))
	defer srv.Close()

	dir := t.TempDir()
	writeConfig(t, dir, "remote:\n  token: s3cret\n")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.DefaultFactory)

	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "--remote", srv.URL, "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	tasks, _ := sess.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].Description != "Buy milk" {
		t.Errorf("unexpected server tasks %+v", tasks)
	}

	_, stderr, code := run(t, dispatcher, "add", "--config", dir, "--remote", srv.URL, " ")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Please enter a task description.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDefaultFactory_RemoteBadToken(t *testing.T) {
	sess, err := service.Open(context.Background(), repository.NewMemory(nil), nil, nil)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	srv := httptest.NewServer(router.New(handlers.New(sess, nil), "s3cret", nil))
	defer srv.Close()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.DefaultFactory)

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir(), "--remote", srv.URL)
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: auth error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
