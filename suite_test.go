package contention

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestRunCounterSuite(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := CounterConfig{Workers: 2, Iterations: 1000}

	results, err := RunCounterSuite(context.Background(), cfg, Console{Out: &out, Err: &errOut},
		Synced, Atomic, WithLock)
	assert.NoError(t, err)
	assert.Equal(t, len(results), 3)

	text := out.String()
	assert.That(t, strings.Contains(text, "Running Synchronized:\nExpected: 2000\nActual: 2000\nDuration: "))
	assert.That(t, strings.Contains(text, "Running Atomic:\n"))
	assert.That(t, strings.Contains(text, "Running With Lock:\n"))
	assert.Equal(t, strings.Count(text, "Actual: 2000\n"), 3)
	assert.That(t, !strings.Contains(text, "VIOLATION"))
	assert.Equal(t, errOut.Len(), 0)
}

func TestRunCounterSuiteIncomplete(t *testing.T) {
	var out, errOut bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunCounterSuite(ctx, DefaultCounterConfig(), Console{Out: &out, Err: &errOut}, Synced, Atomic)
	assert.Error(t, err)
	assert.Equal(t, len(results), 0)

	// every strategy is still attempted and reported.
	assert.Equal(t, strings.Count(out.String(), "Running "), 2)
	assert.Equal(t, strings.Count(errOut.String(), "INCOMPLETE: "), 2)
}

func TestRunFileSuite(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := DefaultFileConfig()
	cfg.Path = filepath.Join(t.TempDir(), "thread_safe_demo.txt")
	assert.NoError(t, os.WriteFile(cfg.Path, []byte("left over from last time\n"), 0o644))

	results, err := RunFileSuite(context.Background(), cfg, Console{Out: &out, Err: &errOut})
	assert.NoError(t, err)
	assert.Equal(t, len(results), 4)

	text := out.String()
	for _, s := range WriteStrategies() {
		assert.That(t, strings.Contains(text, "Starting "+s.Title()+" writer demo...\n"))
	}
	assert.That(t, strings.HasSuffix(text, "All demos completed. Check "+cfg.Path+" for results.\n"))
	assert.That(t, !strings.Contains(text, "VIOLATION"))
	assert.Equal(t, errOut.Len(), 0)

	// the old file was deleted, not appended to.
	rep, err := Inspect(cfg.Path)
	assert.NoError(t, err)
	assert.Equal(t, len(rep.Malformed), 0)
	assert.Equal(t, len(rep.Lines), 200)
}

func TestRunFileSuiteIOFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := DefaultFileConfig()
	cfg.Path = filepath.Join(t.TempDir(), "missing", "out.txt")

	_, err := RunFileSuite(context.Background(), cfg, Console{Out: &out, Err: &errOut})
	assert.Error(t, err)

	// the channel strategy cannot open its handle; the others log and count.
	assert.That(t, strings.Contains(errOut.String(), "IO FAILURE: MUTEX: 50 of 50 writes failed"))
	assert.That(t, strings.Contains(errOut.String(), "IO FAILURE: CHANNEL: "))
	assert.That(t, strings.Contains(out.String(), "All demos completed."))
}
