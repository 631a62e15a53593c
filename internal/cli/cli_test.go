package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tacogips/kickstart/internal/resolver"
)

// fakePrompter accepts every default and picks the first option.
type fakePrompter struct {
	cancel bool
	asked  []string
}

func (p *fakePrompter) Input(tp resolver.TextPrompt) (string, error) {
	p.asked = append(p.asked, tp.Message)
	if p.cancel {
		return "", resolver.ErrCancelled
	}
	return tp.Default, nil
}

func (p *fakePrompter) Confirm(cp resolver.ConfirmPrompt) (bool, error) {
	p.asked = append(p.asked, cp.Message)
	return !p.cancel, nil
}

func (p *fakePrompter) Select(sp resolver.SelectPrompt) (int, error) {
	p.asked = append(p.asked, sp.Message)
	return 0, nil
}

// runCLI executes the root command in dir and returns stdout and stderr.
func runCLI(t *testing.T, dir string, p resolver.Prompter, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("KICKSTART_CONFIG_FILE", "")
	t.Setenv("npm_config_user_agent", "")

	savedPrompter, savedTerminal := newPrompter, isTerminal
	newPrompter = func() resolver.Prompter { return p }
	isTerminal = func() bool { return false }
	t.Cleanup(func() { newPrompter, isTerminal = savedPrompter, savedTerminal })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemplate(t *testing.T, root, dir string) {
	t.Helper()
	tmpl := filepath.Join(root, "template-"+dir)
	if err := os.MkdirAll(filepath.Join(tmpl, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	manifest := "{\n  // starter\n  \"name\": \"starter\",\n  \"version\": \"0.0.0\",\n}\n"
	if err := os.WriteFile(filepath.Join(tmpl, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpl, "src", "a.ts"), []byte("export const a = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRootCreatesProject(t *testing.T) {
	work := t.TempDir()
	templates := t.TempDir()
	writeTemplate(t, templates, "lib-rollup-starter")

	p := &fakePrompter{}
	out, _, err := runCLI(t, work, p, "demo", "-t", "rollup", "--version", "1.2.3", "--templates-dir", templates)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(work, "demo", "package.json"))
	if err != nil {
		t.Fatalf("package.json not written: %v", err)
	}
	want := "{\n  \"name\": \"demo\",\n  \"version\": \"1.2.3\"\n}\n"
	if string(data) != want {
		t.Errorf("package.json = %q, want %q", data, want)
	}
	if _, err := os.Stat(filepath.Join(work, "demo", "src", "a.ts")); err != nil {
		t.Errorf("src/a.ts not copied: %v", err)
	}

	if len(p.asked) != 1 || p.asked[0] != "Version:" {
		t.Errorf("prompts = %v, want only the version prompt", p.asked)
	}
	for _, want := range []string{"Done. Now run:", "  cd demo", "  git init", "  npm i", "  npm run dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCancelled(t *testing.T) {
	work := t.TempDir()
	templates := t.TempDir()
	writeTemplate(t, templates, "lib-rollup-starter")

	out, _, err := runCLI(t, work, &fakePrompter{cancel: true}, "--templates-dir", templates)
	if err != nil {
		t.Fatalf("cancellation must not be an error: %v", err)
	}
	if !strings.Contains(out, "✖ Operation cancelled") {
		t.Errorf("output = %q, want cancellation notice", out)
	}
	entries, _ := os.ReadDir(work)
	if len(entries) != 0 {
		t.Errorf("cancelled run wrote %d entries", len(entries))
	}
}

func TestRootQuiet(t *testing.T) {
	work := t.TempDir()
	templates := t.TempDir()
	writeTemplate(t, templates, "lib-rollup-starter")

	out, _, err := runCLI(t, work, &fakePrompter{}, "demo", "-q", "-t", "rollup", "--templates-dir", templates)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "" {
		t.Errorf("quiet output = %q, want empty", out)
	}
}

func TestRootMissingTemplatesDir(t *testing.T) {
	work := t.TempDir()
	_, _, err := runCLI(t, work, &fakePrompter{}, "demo", "--templates-dir", filepath.Join(work, "nope"))
	if err == nil {
		t.Fatal("expected error for a missing templates directory")
	}
	if _, statErr := os.Stat(filepath.Join(work, "demo")); !os.IsNotExist(statErr) {
		t.Error("target must not be created when templates are missing")
	}
}

func TestRootTooManyArgs(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), &fakePrompter{}, "a", "b")
	if err == nil {
		t.Fatal("expected error for two positional arguments")
	}
}

func TestRootEmptyTemplateFlagIsNamed(t *testing.T) {
	work := t.TempDir()
	templates := t.TempDir()
	writeTemplate(t, templates, "lib-unbuild-starter")

	p := &fakePrompter{}
	_, _, err := runCLI(t, work, p, "demo", "-t", "", "--templates-dir", templates)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := `"" isn't a valid template. Please choose from below:`
	if len(p.asked) < 2 || p.asked[1] != want {
		t.Errorf("prompts = %q, want framework prompt %q", p.asked, want)
	}
}

func TestRootList(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), &fakePrompter{}, "--list")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, want := range []string{"vue3", "  rollup         --template rollup", "weapp --template weapp-starter", "'unbuild(推荐)'"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRootListJSON(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), &fakePrompter{}, "--list", "--json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 5 || entries[0].Name != "lib" || entries[4].Dir != "weapp-starter" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestRootBuildInfo(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), &fakePrompter{}, "--build-info")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.HasPrefix(out, "kickstart version ") {
		t.Errorf("build info = %q", out)
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rollup", "rollup"},
		{"unbuild(推荐)", "'unbuild(推荐)'"},
		{"H5Web-Vant", "H5Web-Vant"},
		{"it's", `'it'\''s'`},
		{"a b", "'a b'"},
	}
	for _, tt := range tests {
		if got := quoteArg(tt.in); got != tt.want {
			t.Errorf("quoteArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapPromptError(t *testing.T) {
	if err := mapPromptError(terminal.InterruptErr); err != resolver.ErrCancelled {
		t.Errorf("interrupt mapped to %v", err)
	}
	if err := mapPromptError(io.EOF); err != resolver.ErrCancelled {
		t.Errorf("EOF mapped to %v", err)
	}
	other := errors.New("boom")
	if err := mapPromptError(other); err != other {
		t.Errorf("other error mapped to %v", err)
	}
}
