package app

import (
	"fmt"
	"os"
	"time"

	"github.com/jominki354/maulwurf/internal/config"
	"github.com/jominki354/maulwurf/internal/database"
	"github.com/jominki354/maulwurf/internal/editor"
	"github.com/jominki354/maulwurf/internal/encryption"
	"github.com/jominki354/maulwurf/internal/fileaccess"
	"github.com/jominki354/maulwurf/internal/persist"
	"github.com/jominki354/maulwurf/internal/tabs"
	"github.com/jominki354/maulwurf/internal/timeline"
)

// App is the application layer between the CLI and the timeline service.
// It constructs all dependencies from config, exposes high-level operations,
// and manages resource lifecycle on Close.
type App struct {
	cfg       *config.Config
	persister timeline.Persister
	store     *timeline.Store
	service   *timeline.Service
	tabs      *tabs.Manager
	oplog     timeline.OperationLog
	encryptor timeline.Encryptor
	op        *EditorOperation
	logFile   *os.File
	logger    timeline.Logger
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Import", "Cleanup").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	persister, err := persist.NewPersisterFromConfig(cfg.Persistence)
	if err != nil {
		return nil, fmt.Errorf("creating persister: %w", err)
	}

	oplog, err := database.NewOperationLogFromConfig(cfg.Database, cfg.AppID)
	if err != nil {
		return nil, fmt.Errorf("creating operation log: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		oplog.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		oplog.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	store := timeline.NewStore(persister, logger)

	minAuto := time.Duration(cfg.Timeline.MinAutoIntervalSecs) * time.Second
	policy := timeline.NewPolicy(minAuto)

	buf := editor.NewBuffer()
	files := fileaccess.NewOSFileAccess()

	events := &timeline.Events{
		SnapshotCreated: func(s timeline.Snapshot) {
			logger.Debug("snapshot event", "id", s.ID, "type", s.Type)
		},
		CleanupPerformed: func(evicted int) {
			logger.Debug("cleanup event", "evicted", evicted)
		},
	}

	svc := timeline.NewService(store, policy, buf, files, enc, logger, timeline.RealClock{}, timeline.NewMonotonicIDGenerator(), events)

	debounce := time.Duration(cfg.Timeline.DebounceMillis) * time.Millisecond
	tabMgr := tabs.NewManager(svc, files, buf, logger, debounce)

	return &App{
		cfg:       cfg,
		persister: persister,
		store:     store,
		service:   svc,
		tabs:      tabMgr,
		oplog:     oplog,
		encryptor: enc,
		op:        NewEditorOperation(operation, ""),
		logFile:   logFile,
		logger:    logger,
	}, nil
}

// persistOperation saves the operation to the operation log, giving it an
// auto-increment ID. This should only be called for mutating commands.
func (a *App) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	id, err := a.oplog.Record(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// Hydrate loads the persisted snapshot collection.
func (a *App) Hydrate() (int, error) {
	return a.service.Hydrate()
}

// Groups returns the per-tab snapshot groups for display.
func (a *App) Groups() []timeline.SnapshotGroup {
	return a.service.Groups()
}

// ForTab returns one tab's snapshots, newest first.
func (a *App) ForTab(tabID string) []timeline.Snapshot {
	return a.service.ForTab(tabID)
}

// Snapshot returns the snapshot with the given id.
func (a *App) Snapshot(id int64) (timeline.Snapshot, bool) {
	return a.service.Store().ByID(id)
}

// Diff returns the line diff between two snapshots.
func (a *App) Diff(idA, idB int64) string {
	return a.service.Compare(idA, idB)
}

// Export writes a snapshot's content to destPath, optionally encrypted.
// Returns the path written, or empty when cancelled.
func (a *App) Export(id int64, destPath string, encrypt bool) (string, error) {
	return a.service.Export(id, destPath, encrypt)
}

// Import records a file as an imported snapshot.
func (a *App) Import(path string) (*timeline.Snapshot, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.Import(path)
}

// ImportEncrypted unlocks the private key with the passphrase and imports
// an encrypted export.
func (a *App) ImportEncrypted(path, passphrase string) (*timeline.Snapshot, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	dctx, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return nil, fmt.Errorf("unlocking encryption key: %w", err)
	}
	return a.service.ImportEncrypted(path, dctx)
}

// Delete removes a snapshot from the timeline.
func (a *App) Delete(id int64) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	a.service.Delete(id)
	return nil
}

// Restore pushes a snapshot back into the editor buffer and records a
// RESTORE snapshot of the restored state.
func (a *App) Restore(id int64) (*timeline.Snapshot, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	snap, err := a.service.Restore(id)
	if err != nil || snap == nil {
		return snap, err
	}
	_, err = a.service.Capture(timeline.CaptureRequest{
		TabID:       snap.TabID,
		Content:     snap.Content,
		FileName:    snap.FileName,
		FilePath:    snap.FilePath,
		Description: "restored snapshot from " + snap.Timestamp.Format("2006-01-02 15:04:05"),
		Type:        timeline.TypeRestore,
	})
	if err != nil {
		return nil, fmt.Errorf("recording restore snapshot: %w", err)
	}
	return snap, nil
}

// Cleanup enforces the AUTO retention cap from config. Returns the number
// of snapshots evicted.
func (a *App) Cleanup() (int, error) {
	if err := a.persistOperation(); err != nil {
		return 0, err
	}
	return a.service.Cleanup(a.cfg.Timeline.MaxAutoSnapshots), nil
}

// ClearTab removes all snapshots of one tab.
func (a *App) ClearTab(tabID string) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	a.service.ClearForTab(tabID)
	return nil
}

// ClearAll empties the whole timeline.
func (a *App) ClearAll() error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	a.service.ClearAll()
	return nil
}

// OpenFile opens a file into a new tab, recording an OPEN snapshot.
func (a *App) OpenFile(path string) (*tabs.Tab, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.tabs.Open(path)
}

// SetupEncryption generates and stores a new key pair protected by the
// passphrase.
func (a *App) SetupEncryption(passphrase string) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.encryptor.Setup(passphrase)
}

// History returns the most recent operations from the operation log.
func (a *App) History(limit int) ([]*timeline.OperationRecord, error) {
	return a.oplog.List(limit)
}

// MarkFailed flags the current operation as failed; Close records the
// final status.
func (a *App) MarkFailed() {
	a.op.Status = "error"
}

// Tabs exposes the tab manager.
func (a *App) Tabs() *tabs.Manager {
	return a.tabs
}

// Service exposes the timeline service for read-level access.
func (a *App) Service() *timeline.Service {
	return a.service
}

// Close finalizes the operation record, flushes pending captures, and
// closes all resources.
func (a *App) Close() error {
	var firstErr error

	a.tabs.Flush()

	if a.op.Persisted() {
		if err := a.oplog.Finish(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.store.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing snapshot store: %w", err)
		}
	}

	if err := a.oplog.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing operation log: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
