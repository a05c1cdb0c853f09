package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/logship/internal/metrics"
	"github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/record"
)

const defaultPollInterval = 500 * time.Millisecond

const readBufferSize = 64 * 1024

// Entry is one parsed record plus the absolute input offset after the line
// that produced it, skipped bytes included. Collectors persist EndOffset
// after a flush so a restarted tailer resumes where shipping left off.
type Entry struct {
	Record    record.Record
	EndOffset int64
}

// TailerConfig controls where a Tailer reads from.
type TailerConfig struct {
	// Path of the NDJSON file to read. Empty means read Input instead.
	Path string

	// Input is the stream read when Path is empty. Defaults to os.Stdin.
	Input io.Reader

	// Follow keeps the file open after EOF and ships lines as they are
	// appended. Ignored when reading from Input.
	Follow bool

	// PollInterval bounds how long appended data can go unnoticed when
	// filesystem events are unavailable or dropped.
	PollInterval time.Duration
}

// Tailer turns an NDJSON input into a stream of entries.
//
// File inputs resume from the stored cursor offset when one matches the
// path, and in follow mode pick up appended lines via filesystem events
// with a polling fallback. Truncation and rotation reset the tailer to the
// start of the new content. Lines that fail to parse are counted, logged
// and skipped; their bytes still advance the offset.
type Tailer struct {
	cfg    TailerConfig
	parser *Parser
	cursor *CursorStore
	logger log.Logger
	source string
}

// NewTailer creates a Tailer. cursor may be nil, in which case reading
// always starts from the top.
func NewTailer(cfg TailerConfig, parser *Parser, cursor *CursorStore, logger log.Logger) *Tailer {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	source := "file"
	if cfg.Path == "" {
		source = "stdin"
	}

	return &Tailer{
		cfg:    cfg,
		parser: parser,
		cursor: cursor,
		logger: logger,
		source: source,
	}
}

// Run reads the input until it is exhausted (Follow off) or ctx is
// canceled, sending parsed entries to out. It closes out on return so
// consumers can drain and stop.
func (t *Tailer) Run(ctx context.Context, out chan<- Entry) error {
	defer close(out)

	if t.cfg.Path == "" {
		return t.runStream(ctx, out)
	}
	return t.runFile(ctx, out)
}

// runStream reads a one-shot stream to EOF.
func (t *Tailer) runStream(ctx context.Context, out chan<- Entry) error {
	reader := bufio.NewReaderSize(t.cfg.Input, readBufferSize)

	var offset int64
	var pending []byte

	for {
		chunk, err := reader.ReadBytes('\n')
		pending = append(pending, chunk...)

		if err == io.EOF {
			// Ship a final unterminated line, then stop.
			offset += int64(len(pending))
			if len(pending) > 0 {
				if err := t.emitLine(ctx, out, pending, offset); err != nil {
					return err
				}
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		offset += int64(len(pending))
		if err := t.emitLine(ctx, out, pending, offset); err != nil {
			return err
		}
		pending = pending[:0]
	}
}

// runFile reads a file from the cursor offset, optionally following it.
func (t *Tailer) runFile(ctx context.Context, out chan<- Entry) error {
	path := t.cfg.Path

	var offset int64
	if t.cursor != nil {
		cur, err := t.cursor.Load(ctx)
		switch {
		case err != nil:
			t.logger.Warn("cursor unreadable, reading from the start", log.Err(err))
		case cur.Path == path:
			offset = cur.Offset
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { f.Close() }()

	if offset > 0 {
		info, statErr := f.Stat()
		if statErr != nil || offset > info.Size() {
			offset = 0
		} else if _, err := f.Seek(offset, io.SeekStart); err != nil {
			offset = 0
		}
	}
	reader := bufio.NewReaderSize(f, readBufferSize)

	t.logger.Info("tailing input",
		log.String("path", path),
		log.Int64("offset", offset),
		log.Bool("follow", t.cfg.Follow))

	var events chan fsnotify.Event
	var watchErrs chan error
	if t.cfg.Follow {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			t.logger.Warn("filesystem watcher unavailable, polling only", log.Err(err))
		} else if err := watcher.Add(filepath.Dir(path)); err != nil {
			t.logger.Warn("cannot watch input directory, polling only", log.Err(err))
			watcher.Close()
		} else {
			defer watcher.Close()
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	var pending []byte

	reopen := func() {
		nf, err := os.Open(path)
		if err != nil {
			t.logger.Warn("reopen failed", log.String("path", path), log.Err(err))
			return
		}
		f.Close()
		f = nf
		reader = bufio.NewReaderSize(f, readBufferSize)
		pending = pending[:0]
		offset = 0
	}

	for {
		// Drain everything currently readable.
		for {
			chunk, err := reader.ReadBytes('\n')
			pending = append(pending, chunk...)
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			offset += int64(len(pending))
			if err := t.emitLine(ctx, out, pending, offset); err != nil {
				return err
			}
			pending = pending[:0]
		}

		if !t.cfg.Follow {
			offset += int64(len(pending))
			if len(pending) > 0 {
				if err := t.emitLine(ctx, out, pending, offset); err != nil {
					return err
				}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Base(ev.Name) != filepath.Base(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				reopen()
			}

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			t.logger.Warn("filesystem watcher error", log.Err(err))

		case <-ticker.C:
			if info, err := os.Stat(path); err == nil && info.Size() < offset {
				reopen()
			}
		}
	}
}

// emitLine parses one raw line and sends the entry. Malformed lines are
// counted and skipped; the error return is reserved for cancellation.
func (t *Tailer) emitLine(ctx context.Context, out chan<- Entry, raw []byte, endOffset int64) error {
	line := bytes.TrimRight(raw, "\r\n")
	if len(line) == 0 {
		return nil
	}

	rec, err := t.parser.Parse(line)
	if err != nil {
		metrics.RecordsDropped.WithLabelValues("malformed").Inc()
		t.logger.Debug("skipping malformed line",
			log.Int64("offset", endOffset),
			log.Err(err))
		return nil
	}

	metrics.RecordsRead.WithLabelValues(t.source).Inc()

	select {
	case out <- Entry{Record: rec, EndOffset: endOffset}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
