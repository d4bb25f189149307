package filehandler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// openFile is replaced in tests to inject open failures
var openFile = os.OpenFile

// civilDay is a calendar date in the handler's location
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{year: y, month: m, day: d}
}

func (d civilDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// dailyFile is the Device behind Handler. All methods run under the
// buffered sink's output lock.
type dailyFile struct {
	dir        string
	name       string
	now        func() time.Time
	loc        *time.Location
	fileMode   os.FileMode
	dirMode    os.FileMode
	maxBackups int

	file *os.File
	day  civilDay
}

func newDailyFile(name string, cfg config) *dailyFile {
	return &dailyFile{
		dir:        cfg.directory,
		name:       name,
		now:        cfg.now,
		loc:        cfg.location,
		fileMode:   cfg.fileMode,
		dirMode:    cfg.dirMode,
		maxBackups: cfg.maxBackups,
	}
}

func (f *dailyFile) livePath() string {
	return filepath.Join(f.dir, f.name+".log")
}

// Write rotates first when the calendar day has changed. If the directory
// or the new file cannot be prepared, p is dropped and the next Write tries
// again.
func (f *dailyFile) Write(p []byte) error {
	today := dayOf(f.now().In(f.loc))

	switch {
	case f.file == nil:
		if err := f.open(today); err != nil {
			return err
		}
	case today != f.day:
		if err := f.rotate(today); err != nil {
			return err
		}
	}

	_, err := f.file.Write(p)
	return err
}

// OnBegin is a no-op; the day is checked on every write
func (f *dailyFile) OnBegin() {}

// OnEnd pushes the batch to stable storage without closing the file
func (f *dailyFile) OnEnd() {
	if f.file != nil {
		_ = f.file.Sync()
	}
}

// Close syncs and closes the live file
func (f *dailyFile) Close() error {
	if f.file == nil {
		return nil
	}
	syncErr := f.file.Sync()
	closeErr := f.file.Close()
	f.file = nil
	if closeErr != nil {
		return closeErr
	}
	return syncErr
}

// open opens the live file for today. A live file left over from an earlier
// day is archived under its modification date first.
func (f *dailyFile) open(today civilDay) error {
	if err := os.MkdirAll(f.dir, f.dirMode); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	live := f.livePath()
	if info, err := os.Stat(live); err == nil {
		if modDay := dayOf(info.ModTime().In(f.loc)); modDay != today {
			// best effort; on failure the old content is appended to
			_ = os.Rename(live, f.archivePath(modDay))
		}
	}

	file, err := openFile(live, os.O_CREATE|os.O_WRONLY|os.O_APPEND, f.fileMode)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	f.file = file
	f.day = today
	return nil
}

// rotate archives the live file under f.day and opens a fresh one
func (f *dailyFile) rotate(today civilDay) error {
	if err := os.MkdirAll(f.dir, f.dirMode); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	_ = f.file.Close()
	f.file = nil
	_ = os.Rename(f.livePath(), f.archivePath(f.day))

	if f.maxBackups > 0 {
		f.cleanupOldBackups()
	}

	file, err := openFile(f.livePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, f.fileMode)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	f.file = file
	f.day = today
	return nil
}

// archivePath returns {name}-{date}.log, or {name}-{date}.{n}.log with the
// smallest free n when that name is already taken.
func (f *dailyFile) archivePath(d civilDay) string {
	stem := filepath.Join(f.dir, f.name+"-"+d.String())
	path := stem + ".log"
	for n := 1; exists(path); n++ {
		path = fmt.Sprintf("%s.%d.log", stem, n)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// isArchive reports whether base is an archive name of this handler, so
// files belonging to a sink named e.g. "Test-extra" are left alone.
func (f *dailyFile) isArchive(base string) bool {
	rest, ok := strings.CutPrefix(base, f.name+"-")
	if !ok || len(rest) < len("2006-01-02") || !strings.HasSuffix(rest, ".log") {
		return false
	}
	_, err := time.Parse("2006-01-02", rest[:len("2006-01-02")])
	return err == nil
}

// cleanupOldBackups removes the oldest archives beyond maxBackups
func (f *dailyFile) cleanupOldBackups() {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, e := range entries {
		if e.IsDir() || !f.isArchive(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{
			path:    filepath.Join(f.dir, e.Name()),
			modTime: info.ModTime(),
		})
	}
	if len(backups) <= f.maxBackups {
		return
	}

	// oldest first; names order archives of the same instant
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].path < backups[j].path
		}
		return backups[i].modTime.Before(backups[j].modTime)
	})
	for _, b := range backups[:len(backups)-f.maxBackups] {
		_ = os.Remove(b.path)
	}
}
