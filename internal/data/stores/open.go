package stores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/codeblocks/internal/core/logging"
	"github.com/colonyops/codeblocks/internal/data/db"
)

// Open opens the database in dataDir and returns a BlockStore over it. A
// corrupted database file is moved aside and replaced with an empty one.
// The returned close function releases the connection.
func Open(dataDir string) (*BlockStore, func() error, error) {
	database, err := db.Open(dataDir)
	if err != nil && corrupted(err) {
		backup, qerr := quarantine(dataDir, time.Now())
		if qerr != nil {
			return nil, nil, fmt.Errorf("move corrupted database aside: %w", qerr)
		}
		l := logging.Component("stores")
		l.Warn().Err(err).Str("backup", backup).Msg("database corrupted, starting empty")
		database, err = db.Open(dataDir)
	}
	if err != nil {
		return nil, nil, err
	}
	return NewBlockStore(database), database.Close, nil
}

// corrupted reports whether err means the file is not a usable database.
// Open failures such as permissions are not corruption and are left alone.
func corrupted(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// quarantine renames the database file and its WAL and SHM sidecars to
// "<file>.corrupt.<timestamp>" so the next open starts fresh. Missing files
// are skipped. It returns the backup path of the main file.
func quarantine(dataDir string, now time.Time) (string, error) {
	src := filepath.Join(dataDir, db.FileName)
	dst := fmt.Sprintf("%s.corrupt.%s", src, now.Format("20060102-150405"))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		err := os.Rename(src+suffix, dst+suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return dst, nil
}
