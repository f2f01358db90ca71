package contention

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrCorrupt is returned by FileReport.Check when the file does not hold the
// lines a run should have produced.
var ErrCorrupt = errors.New("result file corrupt")

var lineRE = regexp.MustCompile(`^\[([A-Z]+)\] Thread-(\d+) write (\d+)$`)

// Line is one well formed line of a result file.
type Line struct {
	Tag    string
	Worker int
	Write  int
}

// FileReport is the parsed content of a result file.
type FileReport struct {
	Lines     []Line
	Malformed []string
}

// Inspect reads the result file at path and parses every line.
func Inspect(path string) (FileReport, error) {
	fh, err := os.Open(path)
	if err != nil {
		return FileReport{}, err
	}
	defer fh.Close()

	var rep FileReport
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		text := strings.TrimSuffix(scanner.Text(), "\r")
		line, ok := parseLine(text)
		if !ok {
			rep.Malformed = append(rep.Malformed, text)
			continue
		}
		rep.Lines = append(rep.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return FileReport{}, fmt.Errorf("read %s: %w", path, err)
	}
	return rep, nil
}

func parseLine(text string) (Line, bool) {
	m := lineRE.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	worker, err := strconv.Atoi(m[2])
	if err != nil {
		return Line{}, false
	}
	write, err := strconv.Atoi(m[3])
	if err != nil {
		return Line{}, false
	}
	return Line{Tag: m[1], Worker: worker, Write: write}, true
}

// Count returns the number of well formed lines carrying tag.
func (r FileReport) Count(tag string) (n int) {
	for _, l := range r.Lines {
		if l.Tag == tag {
			n++
		}
	}
	return n
}

// Check verifies the lines tagged tag are exactly what workers workers each
// writing writes lines produce: the right count, worker and write indexes in
// range, and every worker's writes appearing once each in increasing order.
// Lines of other tags are ignored, but any malformed line fails the check.
func (r FileReport) Check(tag string, workers, writes int) error {
	if len(r.Malformed) > 0 {
		return fmt.Errorf("%w: %d malformed lines, first %q", ErrCorrupt, len(r.Malformed), r.Malformed[0])
	}

	next := make([]int, workers)
	for _, l := range r.Lines {
		if l.Tag != tag {
			continue
		}
		if l.Worker < 0 || l.Worker >= workers {
			return fmt.Errorf("%w: %s worker %d out of range [0, %d)", ErrCorrupt, tag, l.Worker, workers)
		}
		if l.Write != next[l.Worker] {
			return fmt.Errorf("%w: %s worker %d wrote %d, want %d", ErrCorrupt, tag, l.Worker, l.Write, next[l.Worker])
		}
		next[l.Worker]++
	}
	for worker, n := range next {
		if n != writes {
			return fmt.Errorf("%w: %s worker %d has %d lines, want %d", ErrCorrupt, tag, worker, n, writes)
		}
	}
	return nil
}
