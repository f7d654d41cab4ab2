package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jask/gymscore/internal/scoreboard"
)

// TransferService moves the board in and out of CSV files.
type TransferService struct {
	Board *scoreboard.Controller
}

// ImportResult describes what an import did to the board.
type ImportResult struct {
	Rejected bool
	Before   scoreboard.State
	After    scoreboard.State
}

// Export writes the board to dir and returns the file path. The date in the
// file name and the data row is taken from now.
func (s *TransferService) Export(ctx context.Context, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	path := filepath.Join(dir, scoreboard.ExportFileName(now))
	data := scoreboard.EncodeCSV(s.Board.State(), now)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Import replaces the board with the contents of r. Input too short to decode
// leaves the board alone and is reported through Rejected, not as an error.
func (s *TransferService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	before := s.Board.State()
	res := ImportResult{Before: before, After: before}

	data, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read import: %w", err)
	}
	next, err := scoreboard.DecodeCSV(string(data), before)
	if errors.Is(err, scoreboard.ErrMalformedInput) {
		log.Printf("import rejected: %v", err)
		res.Rejected = true
		return res, nil
	}
	if err != nil {
		return res, err
	}
	// a failed write still leaves the imported board in memory
	err = s.Board.Replace(ctx, next)
	res.After = s.Board.State()
	return res, err
}

// ImportFile opens path and imports it.
func (s *TransferService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}
