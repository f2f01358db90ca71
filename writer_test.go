package contention

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/zeebo/assert"
)

func writeConcurrently(t *testing.T, w LineWriter, tag string, workers, writes int) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < writes; j++ {
				if err := w.WriteLine(Payload(tag, i, j)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.NoError(t, w.Close())
}

func TestPayload(t *testing.T) {
	assert.Equal(t, Payload("MUTEX", 0, 0), "[MUTEX] Thread-0 write 0")
	assert.Equal(t, Payload("QUEUE", 4, 9), "[QUEUE] Thread-4 write 9")

	line, ok := parseLine(Payload("LOCK", 12, 345))
	assert.That(t, ok)
	assert.Equal(t, line, Line{Tag: "LOCK", Worker: 12, Write: 345})
}

func TestWriters(t *testing.T) {
	for _, s := range WriteStrategies() {
		t.Run(s.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			w, err := NewWriter(s, path, 8)
			assert.NoError(t, err)

			writeConcurrently(t, w, s.String(), 5, 10)

			rep, err := Inspect(path)
			assert.NoError(t, err)
			assert.Equal(t, len(rep.Lines), 50)
			assert.Equal(t, rep.Count(s.String()), 50)
			assert.NoError(t, rep.Check(s.String(), 5, 10))
		})
	}
}

func TestWritersSizes(t *testing.T) {
	for _, size := range sizes(10, 6, 20) {
		workers, writes := size[0], size[1]
		for _, s := range WriteStrategies() {
			path := filepath.Join(t.TempDir(), "out.txt")
			w, err := NewWriter(s, path, 4)
			assert.NoError(t, err)

			writeConcurrently(t, w, s.String(), workers, writes)

			rep, err := Inspect(path)
			if writes == 0 && errors.Is(err, os.ErrNotExist) {
				continue
			}
			assert.NoError(t, err)
			assert.Equal(t, len(rep.Lines), workers*writes)
			assert.NoError(t, rep.Check(s.String(), workers, writes))
		}
	}
}

func TestWritersLineEnding(t *testing.T) {
	for _, s := range WriteStrategies() {
		path := filepath.Join(t.TempDir(), "out.txt")
		w, err := NewWriter(s, path, 1)
		assert.NoError(t, err)
		assert.NoError(t, w.WriteLine("one"))
		assert.NoError(t, w.WriteLine("two"))
		assert.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, string(data), "one"+lineEnding+"two"+lineEnding)
	}
}

func TestWritersAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	assert.NoError(t, os.WriteFile(path, []byte("existing"+lineEnding), 0o644))

	for _, s := range WriteStrategies() {
		w, err := NewWriter(s, path, 1)
		assert.NoError(t, err)
		assert.NoError(t, w.WriteLine(s.String()))
		assert.NoError(t, w.Close())
	}

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.DeepEqual(t, strings.Split(strings.TrimSuffix(string(data), lineEnding), lineEnding),
		[]string{"existing", "MUTEX", "LOCK", "QUEUE", "CHANNEL"})
}

func TestWritersClosed(t *testing.T) {
	for _, s := range WriteStrategies() {
		t.Run(s.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			w, err := NewWriter(s, path, 1)
			assert.NoError(t, err)
			assert.NoError(t, w.WriteLine("before"))
			assert.NoError(t, w.Close())
			assert.NoError(t, w.Close())

			err = w.WriteLine("after")
			assert.That(t, errors.Is(err, ErrClosed))
			assert.That(t, errors.Is(err, os.ErrClosed))

			rep, err := Inspect(path)
			assert.NoError(t, err)
			assert.DeepEqual(t, rep.Malformed, []string{"before"})
		})
	}
}

func TestWritersIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	for _, w := range []LineWriter{NewMutexWriter(path), NewLockWriter(path)} {
		// a failed write does not poison the next one.
		assert.Error(t, w.WriteLine("a"))
		assert.Error(t, w.WriteLine("b"))
		assert.NoError(t, w.Close())
	}

	_, err := NewChannelWriter(path)
	assert.Error(t, err)
	assert.That(t, errors.Is(err, os.ErrNotExist))

	_, err = NewWriter(WriteStrategy(9), path, 1)
	assert.That(t, errors.Is(err, ErrUnknownStrategy))
}

func BenchmarkWriters(b *testing.B) {
	for _, s := range WriteStrategies() {
		b.Run(s.String(), func(b *testing.B) {
			path := filepath.Join(b.TempDir(), "out.txt")
			w, err := NewWriter(s, path, 1024)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if err := w.WriteLine("[BENCH] Thread-0 write 0"); err != nil {
						b.Error(err)
						return
					}
				}
			})
			if err := w.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
