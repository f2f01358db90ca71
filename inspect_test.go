package contention

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func inspectString(t *testing.T, content string) FileReport {
	path := filepath.Join(t.TempDir(), "out.txt")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	rep, err := Inspect(path)
	assert.NoError(t, err)
	return rep
}

func TestInspect(t *testing.T) {
	rep := inspectString(t, strings.Join([]string{
		"[MUTEX] Thread-0 write 0",
		"[MUTEX] Thread-1 write 0",
		"[LOCK] Thread-0 write 0",
		"[MUTEX] Thread-0 write 1",
		"[MUTEX] Thread-1 write 1",
	}, "\n")+"\n")

	assert.Equal(t, len(rep.Lines), 5)
	assert.Equal(t, len(rep.Malformed), 0)
	assert.Equal(t, rep.Count("MUTEX"), 4)
	assert.Equal(t, rep.Count("LOCK"), 1)
	assert.NoError(t, rep.Check("MUTEX", 2, 2))
	assert.NoError(t, rep.Check("LOCK", 1, 1))
	assert.NoError(t, rep.Check("QUEUE", 3, 0))
}

func TestInspectCRLF(t *testing.T) {
	rep := inspectString(t, "[QUEUE] Thread-0 write 0\r\n[QUEUE] Thread-0 write 1\r\n")
	assert.NoError(t, rep.Check("QUEUE", 1, 2))
}

func TestInspectCheckFailures(t *testing.T) {
	cases := map[string]string{
		"interleaved": "[MUTEX] Thread-0 wr[MUTEX] Thread-1 write 0\nite 0\n",
		"out of order": "[MUTEX] Thread-0 write 1\n[MUTEX] Thread-0 write 0\n",
		"duplicate":    "[MUTEX] Thread-0 write 0\n[MUTEX] Thread-0 write 0\n",
		"missing":      "[MUTEX] Thread-0 write 0\n",
		"bad worker":   "[MUTEX] Thread-0 write 0\n[MUTEX] Thread-0 write 1\n[MUTEX] Thread-2 write 0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			rep := inspectString(t, content)
			err := rep.Check("MUTEX", 1, 2)
			assert.That(t, errors.Is(err, ErrCorrupt))
		})
	}
}

func TestInspectMissing(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.txt"))
	assert.That(t, errors.Is(err, os.ErrNotExist))
}
