package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// InputRecord is one line of a JSONL transcript: a text plus the
// direction it should be checked as. Error and LineNumber are set by the
// reader so callers can report malformed lines without losing the rest of
// the file.
type InputRecord struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Direction  string `json:"direction"`
	LineNumber int    `json:"-"`
	Error      error  `json:"-"`
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll streams records from the source, one per non-empty line. Parse
// failures come through the channel as records with Error set. The
// channel closes when the source is exhausted or the context is done.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			var record InputRecord
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				r.logger.Warn().Err(err).Int("line", lineNumber).Msg("skipping malformed record")
				record = InputRecord{LineNumber: lineNumber, Error: err}
			} else {
				record.LineNumber = lineNumber
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read input")
		}
	}()

	return out
}
