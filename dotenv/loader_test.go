package dotenv_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boddenberg/dotenv-go/dotenv"
)

type logLine struct {
	level string
	msg   string
}

type recordingSink struct {
	lines []logLine
}

func (s *recordingSink) Debug(msg string) { s.lines = append(s.lines, logLine{"debug", msg}) }
func (s *recordingSink) Info(msg string)  { s.lines = append(s.lines, logLine{"info", msg}) }
func (s *recordingSink) Warn(msg string)  { s.lines = append(s.lines, logLine{"warn", msg}) }
func (s *recordingSink) Error(msg string) { s.lines = append(s.lines, logLine{"error", msg}) }

func (s *recordingSink) byLevel(level string) []string {
	var out []string
	for _, l := range s.lines {
		if l.level == level {
			out = append(out, l.msg)
		}
	}
	return out
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func newTestLoader(sink dotenv.Sink) (*dotenv.Loader, *dotenv.MapStore, *dotenv.MapStore) {
	env := dotenv.NewMapStore()
	server := dotenv.NewMapStore()
	return dotenv.NewWithStores(env, server, sink, nil), env, server
}

func assertValue(t *testing.T, s dotenv.Store, key, want string) {
	t.Helper()

	got, ok := s.Get(key)
	if !ok {
		t.Fatalf("expected %s to be set", key)
	}
	if got != want {
		t.Errorf("%s: expected %q, got %q", key, want, got)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeEnvFile(t, "APP_ENV=testing\nAPP_DEBUG=true\nAPP_NAME=\"Test App\"\nDB_PASSWORD=secret123\n")

	loader, env, server := newTestLoader(nil)
	loader.Load(path)

	for _, s := range []dotenv.Store{env, server} {
		assertValue(t, s, "APP_ENV", "testing")
		assertValue(t, s, "APP_DEBUG", "true")
		assertValue(t, s, "APP_NAME", "Test App")
		assertValue(t, s, "DB_PASSWORD", "secret123")
	}
	if !loader.Loaded() {
		t.Error("expected loader to be marked loaded")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnvFile(t, "APP_ENV=should_not_override\nOTHER=file")

	loader, env, server := newTestLoader(nil)
	env.Set("APP_ENV", "preset")
	server.Set("OTHER", "preset-server")
	loader.Load(path)

	assertValue(t, env, "APP_ENV", "preset")
	assertValue(t, server, "APP_ENV", "should_not_override")
	assertValue(t, env, "OTHER", "file")
	assertValue(t, server, "OTHER", "preset-server")
}

func TestLoad_Idempotent(t *testing.T) {
	path := writeEnvFile(t, "ONCE_ONLY=yes")

	sink := &recordingSink{}
	loader, env, _ := newTestLoader(sink)
	loader.Load(path)

	env.Delete("ONCE_ONLY")
	if err := os.WriteFile(path, []byte("ONCE_ONLY=yes\nNEW_KEY=1"), 0o600); err != nil {
		t.Fatalf("rewrite env file: %v", err)
	}
	loader.Load(path)

	if env.Has("ONCE_ONLY") || env.Has("NEW_KEY") {
		t.Error("expected second Load to be a no-op")
	}
	if !errors.Is(loader.Result().Err, dotenv.ErrAlreadyLoaded) {
		t.Errorf("expected ErrAlreadyLoaded, got %v", loader.Result().Err)
	}

	infos := sink.byLevel("info")
	if last := infos[len(infos)-1]; !strings.Contains(last, "already loaded") {
		t.Errorf("expected already-loaded diagnostic, got %q", last)
	}
}

func TestLoad_ResetAllowsReload(t *testing.T) {
	path := writeEnvFile(t, "RESET_VAR=abc")

	loader, env, _ := newTestLoader(nil)
	loader.Load(path)
	loader.Reset()
	if loader.Loaded() {
		t.Fatal("expected Reset to clear loaded flag")
	}

	env.Delete("RESET_VAR")
	loader.Load(path)

	assertValue(t, env, "RESET_VAR", "abc")
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent", ".env")

	sink := &recordingSink{}
	loader, env, server := newTestLoader(sink)
	loader.Load(missing)

	if env.Len() != 0 || server.Len() != 0 {
		t.Error("expected no mutations for missing file")
	}

	warnings := sink.byLevel("warn")
	if len(warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0], missing) {
		t.Errorf("expected warning to mention %s, got %q", missing, warnings[0])
	}

	var notFound *dotenv.FileNotFoundError
	if !errors.As(loader.Result().Err, &notFound) {
		t.Errorf("expected FileNotFoundError, got %v", loader.Result().Err)
	}
}

func TestLoad_MissingFileCanBeRetried(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	loader, env, _ := newTestLoader(nil)
	loader.Load(path)
	if loader.Loaded() {
		t.Fatal("expected missing file to leave loader unloaded")
	}

	if err := os.WriteFile(path, []byte("LATE=1"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	loader.Load(path)

	assertValue(t, env, "LATE", "1")
}

func TestLoad_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()

	sink := &recordingSink{}
	loader, _, _ := newTestLoader(sink)
	loader.Load(dir)

	if len(sink.byLevel("warn")) != 1 {
		t.Errorf("expected a not-found warning for a directory, got %v", sink.lines)
	}
}

func TestLoad_MasksSensitiveKeys(t *testing.T) {
	path := writeEnvFile(t, "API_TOKEN=mytoken123\nNORMAL_KEY=value")

	sink := &recordingSink{}
	loader, _, _ := newTestLoader(sink)
	loader.Load(path)

	infos := sink.byLevel("info")
	if len(infos) != 2 {
		t.Fatalf("expected 2 info diagnostics, got %d: %v", len(infos), infos)
	}
	if !strings.Contains(infos[0], "API_TOKEN=***") {
		t.Errorf("expected masked token, got %q", infos[0])
	}
	if strings.Contains(infos[0], "mytoken123") {
		t.Errorf("token value leaked into diagnostic: %q", infos[0])
	}
	if !strings.Contains(infos[1], "NORMAL_KEY=value") {
		t.Errorf("expected plain value, got %q", infos[1])
	}
}

func TestLoad_NoDiagnosticWhenNothingInserted(t *testing.T) {
	path := writeEnvFile(t, "PRESET=file")

	sink := &recordingSink{}
	loader, env, server := newTestLoader(sink)
	env.Set("PRESET", "a")
	server.Set("PRESET", "b")
	loader.Load(path)

	if infos := sink.byLevel("info"); len(infos) != 0 {
		t.Errorf("expected no info diagnostics, got %v", infos)
	}
	if len(loader.Result().Inserted) != 0 {
		t.Errorf("expected no inserted keys, got %v", loader.Result().Inserted)
	}
}

func TestLoad_ExportAndInvalidLines(t *testing.T) {
	path := writeEnvFile(t, "export VALID=ok\nINVALID_LINE\n# comment\n")

	sink := &recordingSink{}
	loader, env, _ := newTestLoader(sink)
	loader.Load(path)

	assertValue(t, env, "VALID", "ok")
	if env.Has("INVALID_LINE") {
		t.Error("expected INVALID_LINE to be absent")
	}

	res := loader.Result()
	if len(res.Rejected) != 1 || res.Rejected[0] != 2 {
		t.Errorf("expected line 2 rejected, got %v", res.Rejected)
	}
	if debugs := sink.byLevel("debug"); len(debugs) != 1 {
		t.Errorf("expected 1 debug diagnostic, got %v", debugs)
	}
}

func TestLoad_QuotesEscapesAndWhitespace(t *testing.T) {
	content := strings.Join([]string{
		`QUOTED1='hello world'`,
		`QUOTED2="test string"`,
		`ESCAPED_QUOTE="He said \"hi\""`,
		`ESCAPED_BACKSLASH="C:\\Path"`,
		`INSIDE1="He said 'yo'"`,
		`INSIDE2='Then she said "bye"'`,
		`  KEY1   =   " spaced "`,
		"TAB_KEY\t=\t\"tabbed\"",
		`KEY.ONE=1`,
		`KEY-TWO=2`,
		`KEY123=3`,
	}, "\n")
	path := writeEnvFile(t, content)

	loader, env, _ := newTestLoader(nil)
	loader.Load(path)

	assertValue(t, env, "QUOTED1", "hello world")
	assertValue(t, env, "QUOTED2", "test string")
	assertValue(t, env, "ESCAPED_QUOTE", `He said \"hi\"`)
	assertValue(t, env, "ESCAPED_BACKSLASH", `C:\Path`)
	assertValue(t, env, "INSIDE1", "He said 'yo'")
	assertValue(t, env, "INSIDE2", `Then she said "bye"`)
	assertValue(t, env, "KEY1", " spaced ")
	assertValue(t, env, "TAB_KEY", "tabbed")
	assertValue(t, env, "KEY.ONE", "1")
	assertValue(t, env, "KEY-TWO", "2")
	assertValue(t, env, "KEY123", "3")
}

func TestLoad_CommentsAndBlankLinesOnly(t *testing.T) {
	path := writeEnvFile(t, "# just a comment\n\n\n\t\n")

	sink := &recordingSink{}
	loader, env, _ := newTestLoader(sink)
	loader.Load(path)

	if env.Len() != 0 {
		t.Errorf("expected empty store, got %d keys", env.Len())
	}
	if len(sink.lines) != 0 {
		t.Errorf("expected no diagnostics, got %v", sink.lines)
	}
	if !loader.Loaded() {
		t.Error("expected loader to be marked loaded")
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("DOTENV_TEST_PRESET", "preset")
	// Register cleanup, then make the key absent for the loader.
	t.Setenv("DOTENV_TEST_NEW", "")
	os.Unsetenv("DOTENV_TEST_NEW")

	path := writeEnvFile(t, "DOTENV_TEST_PRESET=file\nDOTENV_TEST_NEW=file")

	loader := dotenv.NewWithStores(dotenv.Process(), dotenv.NewMapStore(), nil, nil)
	loader.Load(path)

	if got := os.Getenv("DOTENV_TEST_PRESET"); got != "preset" {
		t.Errorf("expected preset value kept, got %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_NEW"); got != "file" {
		t.Errorf("expected value from file, got %q", got)
	}
}
