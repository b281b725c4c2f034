package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
)

// RoundHistoryWriter persists the text history of one round
type RoundHistoryWriter interface {
	WriteRoundHistory(roundID string, content string) error
}

// FileRoundHistoryWriter writes each round to its own file in a directory
type FileRoundHistoryWriter struct {
	directory string
}

// NewFileRoundHistoryWriter creates a new file-based round history writer
func NewFileRoundHistoryWriter(directory string) *FileRoundHistoryWriter {
	return &FileRoundHistoryWriter{directory: directory}
}

// WriteRoundHistory writes content to round_<id>.txt
func (w *FileRoundHistoryWriter) WriteRoundHistory(roundID string, content string) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create round history directory: %w", err)
	}

	filename := filepath.Join(w.directory, fmt.Sprintf("round_%s.txt", roundID))
	if err := fileutil.WriteFileAtomic(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write round history file: %w", err)
	}
	return nil
}

// RoundHistory subscribes to round events and writes a plain text record of
// each round once its results are applied.
type RoundHistory struct {
	formatter *EventFormatter
	writer    RoundHistoryWriter
	seed      int64

	roundID   string
	startTime time.Time
	lines     []string
	err       error
}

// NewRoundHistory creates a history recorder. The seed is written into every
// record so a session can be replayed.
func NewRoundHistory(writer RoundHistoryWriter, seed int64) *RoundHistory {
	return &RoundHistory{
		formatter: NewEventFormatter(FormattingOptions{ShowBanks: true}),
		writer:    writer,
		seed:      seed,
	}
}

// OnEvent implements EventSubscriber
func (rh *RoundHistory) OnEvent(event GameEvent) {
	if start, ok := event.(RoundStartEvent); ok {
		rh.roundID = start.RoundID
		rh.startTime = start.Timestamp()
		rh.lines = rh.lines[:0]
	}
	if rh.roundID == "" {
		return
	}

	if line := rh.formatter.Format(event); line != "" {
		rh.lines = append(rh.lines, line)
	}

	if _, ok := event.(RoundEndEvent); ok {
		if err := rh.writer.WriteRoundHistory(rh.roundID, rh.Text()); err != nil {
			rh.err = err
		}
		rh.roundID = ""
	}
}

// Text renders the record of the current or last round
func (rh *RoundHistory) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %s (seed %d) - %s\n", rh.roundID, rh.seed, rh.startTime.Format("2006/01/02 15:04:05"))
	for _, line := range rh.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Err returns the last write error, if any
func (rh *RoundHistory) Err() error {
	return rh.err
}
