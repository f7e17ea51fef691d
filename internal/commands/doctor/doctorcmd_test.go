package doctor

import (
	"context"
	"strings"
	"testing"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/core"
)

const manifest = "name: myapp\nversion: 1.2.3+7\n"

func testEnv() (*clix.Env, *core.MockFileSystem, *core.MockCommandRunner) {
	fs := core.NewMockFileSystem()
	runner := core.NewMockCommandRunner()
	return &clix.Env{FS: fs, Runner: runner}, fs, runner
}

func resultByName(t *testing.T, results []checkResult, name string) checkResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no %q check in results: %+v", name, results)
	return checkResult{}
}

func TestDiagnoseHealthyProject(t *testing.T) {
	env, fs, runner := testEnv()
	root := "/proj"
	fs.SetDir(root)
	fs.SetFile(root+"/pubspec.yaml", []byte(manifest))
	fs.SetFile(root+"/android/keystore.properties", []byte("storeFile=keystore/app-release.jks\n"))
	fs.SetFile(root+"/android/keystore/app-release.jks", []byte{0x01})
	runner.Outputs["flutter"] = "Flutter 3.24.0 • channel stable\nTools • Dart 3.5.0\n"

	results := diagnose(context.Background(), env, root)

	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}

	flutterCheck := resultByName(t, results, "flutter")
	if !strings.Contains(flutterCheck.Detail, "Flutter 3.24.0") {
		t.Errorf("flutter detail = %q, want version line", flutterCheck.Detail)
	}

	manifestCheck := resultByName(t, results, "manifest")
	if manifestCheck.Detail != "myapp 1.2.3+7" {
		t.Errorf("manifest detail = %q, want %q", manifestCheck.Detail, "myapp 1.2.3+7")
	}
}

func TestDiagnoseMissingTools(t *testing.T) {
	env, fs, runner := testEnv()
	root := "/proj"
	fs.SetDir(root)
	fs.SetFile(root+"/pubspec.yaml", []byte(manifest))
	runner.MissingTools = []string{"flutter", "keytool"}

	results := diagnose(context.Background(), env, root)

	for _, name := range []string{"flutter", "keytool"} {
		r := resultByName(t, results, name)
		if r.Passed || r.Warning {
			t.Errorf("%s: Passed=%v Warning=%v, want hard failure", name, r.Passed, r.Warning)
		}
	}
}

func TestDiagnoseMissingSigningIsWarning(t *testing.T) {
	env, fs, _ := testEnv()
	root := "/proj"
	fs.SetDir(root)
	fs.SetFile(root+"/pubspec.yaml", []byte(manifest))

	results := diagnose(context.Background(), env, root)

	for _, name := range []string{"signing properties", "release keystore"} {
		r := resultByName(t, results, name)
		if r.Passed || !r.Warning {
			t.Errorf("%s: Passed=%v Warning=%v, want warning", name, r.Passed, r.Warning)
		}
		if !strings.Contains(r.Detail, "droidship setup") {
			t.Errorf("%s detail = %q, want setup hint", name, r.Detail)
		}
	}
}

func TestDiagnoseMalformedManifest(t *testing.T) {
	env, fs, _ := testEnv()
	root := "/proj"
	fs.SetDir(root)
	fs.SetFile(root+"/pubspec.yaml", []byte("name: myapp\nversion: not-a-version\n"))

	results := diagnose(context.Background(), env, root)

	r := resultByName(t, results, "manifest")
	if r.Passed {
		t.Fatalf("manifest check passed for malformed version, detail %q", r.Detail)
	}
}
