package contention

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestReportJSON(t *testing.T) {
	rep := Report{
		Counter: []CounterResult{{
			Strategy: Atomic, Workers: 2, Iterations: 5,
			Expected: 10, Actual: 10, Duration: time.Millisecond,
		}},
		Files: []FileResult{{
			Strategy: Queue, Path: "out.txt", Workers: 1, WritesPerWorker: 1, Expected: 1,
		}},
	}
	rep.AddError(nil)
	rep.AddError(errors.New("boom"))

	buf, err := rep.JSON()
	assert.NoError(t, err)

	text := string(buf)
	assert.That(t, strings.Contains(text, `"strategy": "ATOMIC"`))
	assert.That(t, strings.Contains(text, `"strategy": "QUEUE"`))
	assert.That(t, strings.Contains(text, `"duration": 1000000`))
	assert.That(t, strings.Contains(text, `"writes_per_worker": 1`))
	assert.That(t, strings.Contains(text, `"boom"`))
}
