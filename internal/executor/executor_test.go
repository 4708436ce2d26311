package executor

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/sandbox"
)

// newShellExecutor runs /bin/sh as the "provisioning tool", which lets the
// tests drive arbitrary subprocess behavior with one-line scripts.
func newShellExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	root := t.TempDir()
	guard, err := sandbox.NewGuard(root)
	require.NoError(t, err)
	return New("/bin/sh", guard), guard.Root()
}

func shellRequest(dir, script string) model.ExecutionRequest {
	return model.ExecutionRequest{
		Command:          "-c",
		Args:             []string{script},
		WorkingDirectory: dir,
	}
}

func TestRunSuccess(t *testing.T) {
	e, dir := newShellExecutor(t)

	result, err := e.Run(context.Background(), shellRequest(dir, `printf hello; printf world >&2`))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello", result.Stdout)
	assert.Equal(t, "world", result.Stderr)
	assert.False(t, result.TimedOut)
	assert.False(t, result.StdoutTruncated)
}

func TestRunNonzeroExit(t *testing.T) {
	e, dir := newShellExecutor(t)

	result, err := e.Run(context.Background(), shellRequest(dir, `printf "boom" >&2; exit 3`))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "boom", result.Stderr)
	assert.False(t, result.TimedOut)
}

func TestRunTimeout(t *testing.T) {
	e, dir := newShellExecutor(t)

	req := shellRequest(dir, `sleep 10`)
	req.Timeout = 100 * time.Millisecond

	start := time.Now()
	result, err := e.Run(context.Background(), req)
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.TimedOut)
	assert.Equal(t, model.ExitCodeTimeout, result.ExitCode)
	assert.Contains(t, result.ErrorMessage, "timed out")
	// Must resolve within roughly timeout + the 5s kill grace, never the
	// process's own 10s runtime.
	assert.Less(t, elapsed, 8*time.Second)
}

func TestRunStdoutTruncation(t *testing.T) {
	e, dir := newShellExecutor(t)

	req := shellRequest(dir, `i=0; while [ $i -lt 100 ]; do printf "0123456789012345678901234567890123456789"; i=$((i+1)); done`)
	req.MaxOutputBytes = 1000

	result, err := e.Run(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.StdoutTruncated)
	assert.False(t, result.StderrTruncated)
	assert.True(t, strings.HasSuffix(result.Stdout, model.TruncationMarker))
	assert.Equal(t, 1, strings.Count(result.Stdout, model.TruncationMarker))
	assert.LessOrEqual(t, len(result.Stdout), 1000+len(model.TruncationMarker))
}

func TestRunSpawnFailure(t *testing.T) {
	root := t.TempDir()
	guard, err := sandbox.NewGuard(root)
	require.NoError(t, err)
	e := New("definitely-not-a-real-binary-7f3a", guard)

	result, err := e.Run(context.Background(), model.ExecutionRequest{
		Command:          "plan",
		WorkingDirectory: guard.Root(),
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ExitCode)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.True(t, IsToolNotInstalled(result))
}

func TestIsToolNotInstalled(t *testing.T) {
	assert.False(t, IsToolNotInstalled(model.ExecutionResult{Success: true}))
	assert.False(t, IsToolNotInstalled(model.ExecutionResult{ErrorMessage: "exit status 1"}))
	assert.True(t, IsToolNotInstalled(model.ExecutionResult{ErrorMessage: `exec: "terraform": executable file not found in $PATH`}))
	assert.True(t, IsToolNotInstalled(model.ExecutionResult{ErrorMessage: "fork/exec /usr/local/bin/terraform: permission denied"}))
}

func TestSandboxViolationBlocksSpawn(t *testing.T) {
	e, dir := newShellExecutor(t)

	var spawned bool
	e.start = func(cmd *exec.Cmd) error {
		spawned = true
		return cmd.Start()
	}

	req := shellRequest(dir+"/../../outside", `true`)
	_, err := e.Run(context.Background(), req)

	require.Error(t, err)
	assert.True(t, sandbox.IsViolation(err))
	assert.False(t, spawned, "spawn must not be invoked after a sandbox violation")
}

func TestRunEnvOverlay(t *testing.T) {
	e, dir := newShellExecutor(t)

	req := shellRequest(dir, `printf "%s" "$CLOUDIST_TEST_VALUE"`)
	req.EnvOverlay = map[string]string{"CLOUDIST_TEST_VALUE": "overlay-wins"}

	result, err := e.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "overlay-wins", result.Stdout)
}

func TestRunOutputCallbacks(t *testing.T) {
	e, dir := newShellExecutor(t)

	var mu sync.Mutex
	var chunks []string
	req := shellRequest(dir, `printf alpha; printf beta`)
	req.OnStdout = func(chunk string) {
		mu.Lock()
		defer mu.Unlock()
		chunks = append(chunks, chunk)
	}

	result, err := e.Run(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Success)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "alphabeta", strings.Join(chunks, ""))
}

func TestConcurrentInvocations(t *testing.T) {
	e, dir := newShellExecutor(t)

	var wg sync.WaitGroup
	results := make([]model.ExecutionResult, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.Run(context.Background(), shellRequest(dir, `printf ok`))
			require.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.Success)
		assert.Equal(t, "ok", r.Stdout)
	}
}

func TestEscalatorIgnoresTimerAfterExit(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "true")
	require.NoError(t, cmd.Start())

	esc := newEscalator(cmd.Process, time.Hour)
	require.NoError(t, cmd.Wait())
	esc.done()

	// A timer callback racing the exit must lose to done.
	esc.signal()

	assert.False(t, esc.fired())
}

func TestEscalatorSignalBeforeExitFires(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "sleep 5")
	require.NoError(t, cmd.Start())

	esc := newEscalator(cmd.Process, time.Hour)
	esc.signal()
	_ = cmd.Wait()
	esc.done()

	assert.True(t, esc.fired())
}

func TestCaptureWriterDropsAfterCap(t *testing.T) {
	w := newCaptureWriter(10, nil)

	n, err := w.Write([]byte("0123456789extra"))
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	// Later chunks are dropped without repeating the marker.
	_, err = w.Write([]byte("more"))
	require.NoError(t, err)

	assert.True(t, w.Truncated())
	assert.Equal(t, "0123456789"+model.TruncationMarker, w.String())
}

func TestMergeEnv(t *testing.T) {
	merged := mergeEnv([]string{"A=1", "B=2"}, map[string]string{"B": "override", "C": "3"})

	asMap := map[string]string{}
	for _, kv := range merged {
		k, v, _ := strings.Cut(kv, "=")
		asMap[k] = v
	}
	assert.Equal(t, map[string]string{"A": "1", "B": "override", "C": "3"}, asMap)
}
