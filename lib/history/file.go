package history

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/types"
)

// FileStore keeps history as a JSONL file, one entry per line.
type FileStore struct {
	path string
	log  *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(ctx context.Context) ([]types.HistoryEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run, nothing posted yet.
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	var entries []types.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry types.HistoryEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			s.log.Warning("skipping malformed history line %v: %v", lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	return entries, nil
}

func (s *FileStore) Append(ctx context.Context, entry types.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("writing history entry: %w", err)
	}
	return f.Close()
}
