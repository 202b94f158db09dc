package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/claude/repforge/internal/models"
	"github.com/claude/repforge/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	LogsInserted   int64
	LogsDuplicated int64
	RowsRejected   int
}

// Importer reads exported training-log CSV files and inserts set logs.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed unconditionally.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given export directory.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(exportDir, "*.csv"))
	if err != nil {
		return &imp.stats, err
	}

	for _, f := range files {
		if err := imp.importFile(ctx, exportDir, f); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(f), err)
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, exportDir, path string) error {
	relPath, err := filepath.Rel(exportDir, path)
	if err != nil {
		relPath = filepath.Base(path)
	}

	var size int64
	var hash string
	if imp.state != nil {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		size = info.Size()
		hash, err = HashFile(path)
		if err != nil {
			return err
		}
		done, err := imp.state.IsImported(relPath, size, hash)
		if err != nil {
			return fmt.Errorf("checking import state: %w", err)
		}
		if done {
			imp.log.Info("skipping already-imported file", "file", relPath)
			imp.stats.FilesSkipped++
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logs, rejected, err := ParseLogCSV(f)
	if err != nil {
		imp.log.Warn("parse failed", "file", relPath, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	imp.stats.RowsRejected += rejected

	if len(logs) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.LogsInserted += int64(len(logs))
		return nil
	}

	inserted, err := imp.batchInsertLogs(ctx, logs)
	if err != nil {
		return err
	}
	imp.stats.LogsInserted += inserted
	imp.stats.LogsDuplicated += int64(len(logs)) - inserted

	if imp.state != nil {
		if err := imp.state.MarkImported(relPath, size, hash); err != nil {
			imp.log.Warn("marking file imported", "file", relPath, "error", err)
		}
	}
	return nil
}

// batchInsertLogs inserts set logs in chunks to stay within PostgreSQL
// parameter limits. 8 params per row, max 65535 params. Use 8000 rows.
func (imp *Importer) batchInsertLogs(ctx context.Context, logs []models.SetLog) (int64, error) {
	const batchSize = 8000
	var totalInserted int64

	for i := 0; i < len(logs); i += batchSize {
		end := i + batchSize
		if end > len(logs) {
			end = len(logs)
		}
		inserted, err := imp.db.InsertSetLogs(ctx, logs[i:end])
		if err != nil {
			return totalInserted, err
		}
		totalInserted += inserted
	}
	return totalInserted, nil
}

// csv column layout for exported training logs. A header row is required.
const (
	colEntryID = iota
	colCompletedAt
	colReps
	colWeight
	colRPE
	colBonusReps
	colCompleted
	colCount
)

// ParseLogCSV parses an exported training-log CSV into set logs. Malformed
// rows are counted and skipped rather than failing the whole file; a
// malformed header or unreadable stream is an error.
func ParseLogCSV(r io.Reader) (logs []models.SetLog, rejected int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = colCount

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	if header[colEntryID] != "entry_id" {
		return nil, 0, fmt.Errorf("unexpected header %q, want entry_id first", header[colEntryID])
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rejected, fmt.Errorf("reading row: %w", err)
		}

		log, ok := parseLogRow(record)
		if !ok {
			rejected++
			continue
		}
		logs = append(logs, log)
	}
	return logs, rejected, nil
}

func parseLogRow(record []string) (models.SetLog, bool) {
	entryID, err := uuid.Parse(record[colEntryID])
	if err != nil {
		return models.SetLog{}, false
	}
	completedAt, err := time.Parse(time.RFC3339, record[colCompletedAt])
	if err != nil {
		return models.SetLog{}, false
	}
	reps, err := strconv.Atoi(record[colReps])
	if err != nil || reps <= 0 {
		return models.SetLog{}, false
	}
	weight, err := strconv.ParseFloat(record[colWeight], 64)
	if err != nil {
		return models.SetLog{}, false
	}

	log := models.SetLog{
		ID:          uuid.New(),
		EntryID:     entryID,
		CompletedAt: completedAt,
		Reps:        reps,
		Weight:      weight,
		Completed:   true,
	}

	if record[colRPE] != "" {
		rpe, err := strconv.ParseFloat(record[colRPE], 64)
		if err != nil {
			return models.SetLog{}, false
		}
		log.RPE = &rpe
	}
	if record[colBonusReps] != "" {
		bonus, err := strconv.Atoi(record[colBonusReps])
		if err != nil || bonus < 0 {
			return models.SetLog{}, false
		}
		log.BonusReps = &bonus
	}
	if record[colCompleted] != "" {
		completed, err := strconv.ParseBool(record[colCompleted])
		if err != nil {
			return models.SetLog{}, false
		}
		log.Completed = completed
	}
	return log, true
}
