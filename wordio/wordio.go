// Package wordio loads word corpora and labeled query sets from
// whitespace-separated text files.
package wordio

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/0x19f/sievebench"
)

// ReadWords returns every whitespace-separated token in the file, in
// order, truncated to sievebench.MaxElementLen. Any read failure is a
// total failure for the source; no partial list is returned.
func ReadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		words = append(words, clamp(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

// ReadQueries parses lines of the form "word bit", where bit is exactly
// 0 or 1 and labels the word's ground-truth membership. Words are
// truncated with the same policy as ReadWords so the insertion and query
// paths see identical keys. Blank lines are skipped; anything else
// malformed fails the whole source.
func ReadQueries(path string) ([]sievebench.QueryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query list: %w", err)
	}
	defer f.Close()

	var records []sievebench.QueryRecord
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want \"word bit\", got %q", path, line, text)
		}
		var expected bool
		switch fields[1] {
		case "0":
		case "1":
			expected = true
		default:
			return nil, fmt.Errorf("%s:%d: expected bit must be 0 or 1, got %q", path, line, fields[1])
		}
		records = append(records, sievebench.QueryRecord{Word: clamp(fields[0]), Expected: expected})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read query list %s: %w", path, err)
	}
	return records, nil
}

func clamp(w string) string {
	if len(w) > sievebench.MaxElementLen {
		return w[:sievebench.MaxElementLen]
	}
	return w
}
