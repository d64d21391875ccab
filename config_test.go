package feeddetector

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "feeddetect.yaml")
	if err := ioutil.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestReadConfigFileAppliesYAMLOverDefaults(t *testing.T) {
	defer SetDefaultConfig()

	path := writeTempConfig(t, "user_agent: \"Test Agent (set in yaml)\"\n")
	if err := ReadConfigFile(path); err != nil {
		t.Fatalf("ReadConfigFile: %v", err)
	}
	if Config.UserAgent != "Test Agent (set in yaml)" {
		t.Errorf("expected yaml value to override default, got %q", Config.UserAgent)
	}
}

func TestReadConfigFileRejectsBadBatchValues(t *testing.T) {
	defer SetDefaultConfig()

	path := writeTempConfig(t, "batch:\n  num_simultaneous_fetchers: 0\n")
	err := ReadConfigFile(path)
	if err == nil {
		t.Fatalf("expected an error for a zero NumSimultaneousFetchers")
	}
}

func TestReadConfigFileRejectsUnparsableTimeout(t *testing.T) {
	defer SetDefaultConfig()

	path := writeTempConfig(t, "fetch_timeout: \"not-a-duration\"\n")
	err := ReadConfigFile(path)
	if err == nil {
		t.Fatalf("expected an error for an unparsable fetch_timeout")
	}
}

func TestReadConfigFileCompilesExtraDenyPattern(t *testing.T) {
	defer func() {
		SetDefaultConfig()
		extraDenyMatch = nil
	}()

	path := writeTempConfig(t, "extra_deny_pattern: \"blocked\\\\.example\\\\.com\"\n")
	if err := ReadConfigFile(path); err != nil {
		t.Fatalf("ReadConfigFile: %v", err)
	}
	if extraDenyMatch == nil {
		t.Fatalf("expected extraDenyMatch to be compiled from ExtraDenyPattern")
	}
	if !extraDenyMatch.MatchString("blocked.example.com/x") {
		t.Errorf("expected compiled pattern to match the configured host")
	}
}

func TestReadConfigFileMissingFileReportsError(t *testing.T) {
	defer SetDefaultConfig()

	err := ReadConfigFile(filepath.Join(os.TempDir(), "does-not-exist-feeddetect.yaml"))
	if err == nil {
		t.Fatalf("expected an error when the config file does not exist")
	}
}
