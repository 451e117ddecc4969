package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func buildXbuildBinary(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "xbuild")

	moduleDir, _ := filepath.Abs("..")
	t.Logf("Building xbuild from: %s", moduleDir)

	cmd := exec.Command("go", "build", "-a", "-o", binaryPath, ".")
	cmd.Dir = moduleDir
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0", "GOOS=linux", "GOARCH=amd64")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build xbuild binary: %s", string(output))

	return binaryPath
}

func startTestContainer(t *testing.T, ctx context.Context) testcontainers.Container {
	t.Helper()

	binaryPath := buildXbuildBinary(t)
	testdataDir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	ctr, err := testcontainers.Run(ctx, "alpine:3.20",
		testcontainers.WithFiles(
			testcontainers.ContainerFile{
				HostFilePath:      binaryPath,
				ContainerFilePath: "/usr/local/bin/xbuild",
				FileMode:          0o755,
			},
			testcontainers.ContainerFile{
				HostFilePath:      filepath.Join(testdataDir, "fake-cc.sh"),
				ContainerFilePath: "/usr/local/bin/fake-cc",
				FileMode:          0o755,
			},
		),
		testcontainers.WithCmd("tail", "-f", "/dev/null"),
		testcontainers.WithWaitStrategy(
			wait.ForExec([]string{"xbuild", "--version"}).
				WithStartupTimeout(60*time.Second).
				WithPollInterval(time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	err = ctr.CopyDirToContainer(ctx, filepath.Join(testdataDir, "sample-project"), "/", 0o755)
	require.NoError(t, err, "failed to copy testdata to container")

	exitCode, reader, err := ctr.Exec(ctx, []string{"mv", "/sample-project", "/project"})
	require.NoError(t, err)
	if exitCode != 0 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(reader)
		t.Fatalf("workspace setup failed with exit code %d: %s", exitCode, buf.String())
	}

	return ctr
}

func execInProject(t *testing.T, ctx context.Context, ctr testcontainers.Container, command string) (int, string) {
	t.Helper()

	exitCode, reader, err := ctr.Exec(ctx, []string{"sh", "-c", "cd /project && " + command})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(reader)
	require.NoError(t, err)

	return exitCode, buf.String()
}

func TestIntegration_FailureIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping integration test via SKIP_INTEGRATION env var")
	}

	ctx := context.Background()
	ctr := startTestContainer(t, ctx)
	defer testcontainers.CleanupContainer(t, ctr)

	// The windows target fails, so the run as a whole fails.
	exitCode, output := execInProject(t, ctx, ctr, "xbuild build")
	t.Logf("xbuild build output: %s", output)
	assert.NotZero(t, exitCode, "run with a failed target should exit non-zero")

	// Every configured target was still attempted, in order.
	for _, triple := range []string{
		"x86_64-unknown-linux-gnu",
		"aarch64-unknown-linux-gnu",
		"x86_64-pc-windows-gnu",
	} {
		assert.Contains(t, output, triple)
	}
	assert.Contains(t, output, "2/3")
	assert.NotContains(t, output, "3/3")

	// Failed target output lands on stderr.
	assert.Contains(t, output, "linker")

	exitCode, report := execInProject(t, ctx, ctr, "cat build-report.txt")
	t.Logf("report: %s", report)
	assert.Zero(t, exitCode)
	assert.Contains(t, report, "3 total, 2 succeeded, 1 failed")
	assert.Contains(t, report, "FAILED (exit 1)")
	assert.Contains(t, report, "failed: x86_64-pc-windows-gnu")

	// Session logs exist per target.
	exitCode, logs := execInProject(t, ctx, ctr, "ls logs/*/")
	assert.Zero(t, exitCode)
	assert.Contains(t, logs, "x86_64-unknown-linux-gnu.log")
	assert.Contains(t, logs, "x86_64-pc-windows-gnu.log")
}

func TestIntegration_SuccessfulRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping integration test via SKIP_INTEGRATION env var")
	}

	ctx := context.Background()
	ctr := startTestContainer(t, ctx)
	defer testcontainers.CleanupContainer(t, ctr)

	exitCode, output := execInProject(t, ctx, ctr,
		"xbuild build --targets x86_64-unknown-linux-gnu,aarch64-unknown-linux-gnu")
	t.Logf("xbuild build output: %s", output)
	assert.Zerof(t, exitCode, "successful run should exit zero, output: %s", output)
	assert.Contains(t, output, "2/2")
	assert.Contains(t, output, "build complete!")

	exitCode, report := execInProject(t, ctx, ctr, "cat build-report.txt")
	assert.Zero(t, exitCode)
	assert.Contains(t, report, "Build complete! 2/2 targets succeeded")

	// Checksums are generated for a fully successful run.
	exitCode, sums := execInProject(t, ctx, ctr, "cat dist/SHA256SUMS")
	assert.Zero(t, exitCode)
	assert.Contains(t, sums, "x86_64-unknown-linux-gnu.bin")
	assert.Contains(t, sums, "aarch64-unknown-linux-gnu.bin")

	// Run history was recorded.
	exitCode, history := execInProject(t, ctx, ctr, "cat .xbuild/runs.json")
	assert.Zero(t, exitCode)
	assert.Contains(t, history, `"success": true`)
}

func TestIntegration_StopOnFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping integration test via SKIP_INTEGRATION env var")
	}

	ctx := context.Background()
	ctr := startTestContainer(t, ctx)
	defer testcontainers.CleanupContainer(t, ctr)

	exitCode, output := execInProject(t, ctx, ctr,
		"xbuild build --stop-on-failure --targets x86_64-pc-windows-gnu,x86_64-unknown-linux-gnu")
	t.Logf("xbuild build output: %s", output)
	assert.NotZero(t, exitCode)
	assert.Contains(t, output, "stopping after first failure")

	// The remaining target was never attempted.
	lines := strings.Split(output, "\n")
	attempted := 0
	for _, line := range lines {
		if strings.Contains(line, "starting...") {
			attempted++
		}
	}
	assert.Equal(t, 1, attempted)
}

func TestIntegration_TargetsListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("skipping integration test via SKIP_INTEGRATION env var")
	}

	ctx := context.Background()
	ctr := startTestContainer(t, ctx)
	defer testcontainers.CleanupContainer(t, ctr)

	exitCode, output := execInProject(t, ctx, ctr, "xbuild targets")
	assert.Zero(t, exitCode)
	assert.Contains(t, output, "linux:")
	assert.Contains(t, output, "windows:")
	assert.Contains(t, output, "  x86_64-unknown-linux-gnu")
	assert.Contains(t, output, "  x86_64-pc-windows-gnu")
}
