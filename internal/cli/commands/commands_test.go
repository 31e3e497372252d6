package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/output"
)

const scenarioConfig = "interface Gig0/1\n  description uplink\n!comment here\n\nrandom text\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args []string, stdin string) (stdout, stderr string, err error) {
	t.Helper()
	ExitCode = 0
	clearEnv(t)

	cmd := NewClassifyCommand()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFPARSE_INPUT", "")
	t.Setenv("CONFPARSE_LOG_LEVEL", "")
	t.Setenv("CONFPARSE_LOG_FILE", "")
}

func decodeReport(t *testing.T, data string) *output.Report {
	t.Helper()
	var report output.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, data)
	}
	return &report
}

func TestNewClassifyCommand(t *testing.T) {
	cmd := NewClassifyCommand()

	if cmd.Use != "classify [input...]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "output", "style", "verbose", "quiet", "log-level", "log-format", "log-file", "strict", "disable"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "confparse "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRunClassify_Scenario(t *testing.T) {
	path := writeFile(t, t.TempDir(), "core-sw1.cfg", scenarioConfig)

	stdout, stderr, err := execute(t, []string{path, "-o", "json", "-v"}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	report := decodeReport(t, stdout)
	if report.Summary.LinesProcessed != 5 {
		t.Errorf("LinesProcessed = %d, want 5", report.Summary.LinesProcessed)
	}
	if len(report.Files) != 1 {
		t.Fatalf("Files = %d, want 1", len(report.Files))
	}

	want := []classifier.Label{
		classifier.LabelInterface,
		classifier.LabelContinuation,
		classifier.LabelComment,
		classifier.LabelEmptyLine,
		classifier.LabelOther,
	}
	records := report.Files[0].Records
	if len(records) != len(want) {
		t.Fatalf("Records = %d, want %d", len(records), len(want))
	}
	for i, rec := range records {
		if rec.Label != want[i] || !rec.Handled || rec.LineNum != i+1 {
			t.Errorf("record %d = %+v, want handled %v on line %d", i, rec, want[i], i+1)
		}
	}

	for _, msg := range []string{"Start parsing", "End of parsing"} {
		if !strings.Contains(stderr, msg) {
			t.Errorf("stderr missing %q:\n%s", msg, stderr)
		}
	}
}

func TestRunClassify_DisabledLabel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "core-sw1.cfg", scenarioConfig)

	stdout, stderr, err := execute(t, []string{path, "-o", "json", "--disable", "comment"}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}

	report := decodeReport(t, stdout)
	if report.Summary.TotalUnhandled != 1 {
		t.Errorf("TotalUnhandled = %d, want 1", report.Summary.TotalUnhandled)
	}
	// Processing continued past the unhandled line
	if report.Summary.LinesProcessed != 5 {
		t.Errorf("LinesProcessed = %d, want 5", report.Summary.LinesProcessed)
	}
	if len(report.Metadata.MissingHandlers) != 1 || report.Metadata.MissingHandlers[0] != classifier.LabelComment {
		t.Errorf("MissingHandlers = %v, want [comment]", report.Metadata.MissingHandlers)
	}
	if !strings.Contains(stderr, "unknown label encountered") {
		t.Errorf("stderr missing anomaly warning:\n%s", stderr)
	}
}

func TestRunClassify_StrictWithDisabled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "core-sw1.cfg", scenarioConfig)

	_, _, err := execute(t, []string{path, "--strict", "--disable", "other"}, "")
	if err == nil {
		t.Fatal("expected error for strict with disabled labels")
	}
}

func TestRunClassify_TraceLogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "core-sw1.cfg", scenarioConfig)
	logPath := writeFile(t, dir, "debuginfo.txt", "stale content from a previous run\n")

	_, stderr, err := execute(t, []string{path, "-q", "--log-level", "trace", "--log-file", logPath}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if stderr != "" {
		t.Errorf("stderr should be empty when logging to a file, got:\n%s", stderr)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	log := string(data)

	if strings.Contains(log, "stale content") {
		t.Error("log file was not truncated")
	}

	events := []string{
		"Start parsing",
		"line received",
		"classification result",
		"reached interface handler",
		"reached continuation handler",
		"reached comment handler",
		"reached emptyline handler",
		"reached other handler",
		"End of parsing",
	}
	last := -1
	for _, ev := range events {
		idx := strings.Index(log, ev)
		if idx < 0 {
			t.Errorf("log missing %q", ev)
			continue
		}
		if idx < last {
			t.Errorf("log event %q out of order", ev)
		}
		last = idx
	}
	if !strings.Contains(log, "level=TRACE") {
		t.Error("trace events should be labeled TRACE")
	}
}

func TestRunClassify_Stdin(t *testing.T) {
	stdout, _, err := execute(t, []string{"-", "-q"}, "interface Vlan10\r\n!x")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if want := "confparse: 1 files, 2 lines, 0 unhandled\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunClassify_MultipleInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cfg", "interface Gig0/1\n")
	writeFile(t, dir, "b.cfg", "hostname b\n\n")

	stdout, _, err := execute(t, []string{filepath.Join(dir, "*.cfg"), "-o", "json"}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}

	report := decodeReport(t, stdout)
	if report.Summary.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", report.Summary.FilesProcessed)
	}
	if report.Summary.LinesProcessed != 3 {
		t.Errorf("LinesProcessed = %d, want 3", report.Summary.LinesProcessed)
	}
	// Records are dropped without --verbose
	for _, fr := range report.Files {
		if len(fr.Records) != 0 {
			t.Errorf("%s has %d records in non-verbose output", fr.Source, len(fr.Records))
		}
	}
}

func TestRunClassify_MissingInput(t *testing.T) {
	_, stderr, err := execute(t, []string{filepath.Join(t.TempDir(), "play_firewall_config.txt")}, "")
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
	if !strings.Contains(err.Error(), "play_firewall_config.txt") {
		t.Errorf("error should name the input: %v", err)
	}
	if !strings.Contains(stderr, "classification failed") {
		t.Errorf("stderr missing failure diagnostic:\n%s", stderr)
	}
}

func TestRunClassify_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "edge.cfg", scenarioConfig)
	configPath := writeFile(t, dir, "confparse.yaml", `inputs:
  - `+input+`
output: json
handlers:
  disabled: [emptyline]
`)

	stdout, _, err := execute(t, []string{"-c", configPath}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}

	report := decodeReport(t, stdout)
	if report.Metadata.ConfigFile != configPath {
		t.Errorf("ConfigFile = %q, want %q", report.Metadata.ConfigFile, configPath)
	}
	if report.Files[0].Unhandled[classifier.LabelEmptyLine] != 1 {
		t.Errorf("Unhandled = %v, want one emptyline", report.Files[0].Unhandled)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunClassify_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "edge.cfg", scenarioConfig)
	configPath := writeFile(t, dir, "confparse.toml", "output = \"json\"\n")

	stdout, _, err := execute(t, []string{"-c", configPath, "-o", "text", input}, "")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if !strings.Contains(stdout, "Classification Report") {
		t.Errorf("expected text output, got:\n%s", stdout)
	}
}

func TestRunClassify_InvalidOutput(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.cfg", "x\n")

	if _, _, err := execute(t, []string{path, "-o", "xml"}, ""); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestCreateFormatter(t *testing.T) {
	opts := &ClassifyOptions{}
	for _, name := range []string{"text", "json", "markdown"} {
		f, err := createFormatter(name, opts)
		if err != nil {
			t.Errorf("createFormatter(%q) error = %v", name, err)
			continue
		}
		if f.Name() != name {
			t.Errorf("createFormatter(%q).Name() = %q", name, f.Name())
		}
	}
	if _, err := createFormatter("csv", opts); err == nil {
		t.Error("createFormatter(csv) expected error")
	}
}

func TestRunValidate_Success(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "core-sw1.cfg", scenarioConfig)
	configPath := writeFile(t, dir, "confparse.yaml", `inputs:
  - `+input+`
  - `+filepath.Join(dir, "absent.cfg")+`
handlers:
  disabled: [comment]
`)

	cmd := NewValidateCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{configPath})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("validate error = %v", err)
	}

	got := out.String()
	checks := []string{
		"Configuration valid!",
		"comment       disabled",
		"interface     ok",
		"Inputs matched: 2",
		"absent.cfg (warning: not found)",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Errorf("Output missing %q:\n%s", check, got)
		}
	}
}

func TestRunValidate_Invalid(t *testing.T) {
	clearEnv(t)
	configPath := writeFile(t, t.TempDir(), "confparse.yaml", "log:\n  level: loud\n")

	cmd := NewValidateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{configPath})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunValidate_RequiresArg(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err == nil {
		t.Error("expected error without a config file argument")
	}
}

func TestLabelsCommand(t *testing.T) {
	cmd := NewLabelsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--pattern"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("labels error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < len(classifier.Labels()) {
		t.Fatalf("labels output too short:\n%s", out.String())
	}
	for i, l := range classifier.Labels() {
		if !strings.Contains(lines[i], l.String()) {
			t.Errorf("line %d = %q, want label %v", i, lines[i], l)
		}
	}
	if !strings.Contains(out.String(), "Pattern: "+classifier.CompositePattern()) {
		t.Error("missing composite pattern")
	}
}
