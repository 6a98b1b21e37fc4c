package recordfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without an open transaction.
var ErrNoTransaction = errors.New("no open record file transaction")

// FileUnitOfWorkFactory creates units of work on one record file. Commits from
// different units of work are serialized.
type FileUnitOfWorkFactory struct {
	path string
	mu   sync.Mutex
}

// NewFileUnitOfWorkFactory returns a factory for the record file at path. The
// file and its directory are created on the first commit.
func NewFileUnitOfWorkFactory(path string) *FileUnitOfWorkFactory {
	return &FileUnitOfWorkFactory{path: path}
}

// Create returns a new unit of work with no open transaction.
func (f *FileUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &FileUnitOfWork{factory: f}
}

// FileUnitOfWork stages a replacement record set in memory until Commit.
type FileUnitOfWork struct {
	factory *FileUnitOfWorkFactory
	open    bool
	staged  []parcel.Record
	dirty   bool
}

// Begin opens a transaction with an empty staging area. Calling it on an open
// transaction is a no-op.
func (uow *FileUnitOfWork) Begin(_ context.Context) error {
	if uow.open {
		return nil
	}
	uow.open, uow.staged, uow.dirty = true, nil, false
	return nil
}

// Commit writes the staged records, if any, and closes the transaction.
func (uow *FileUnitOfWork) Commit(_ context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}
	defer uow.reset()

	if !uow.dirty {
		return nil
	}
	return uow.factory.write(uow.staged)
}

// Rollback drops the staged records; the file keeps its previous snapshot.
func (uow *FileUnitOfWork) Rollback(_ context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}
	uow.reset()
	return nil
}

// ParcelRecordRepository stages writes while a transaction is open and writes
// through otherwise.
func (uow *FileUnitOfWork) ParcelRecordRepository() ports.ParcelRecordRepository {
	return &repository{uow: uow}
}

func (uow *FileUnitOfWork) reset() {
	uow.open, uow.staged, uow.dirty = false, nil, false
}

func (f *FileUnitOfWorkFactory) read() ([]parcel.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []parcel.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("record file %s: %w", f.path, err)
	}
	return records, nil
}

func (f *FileUnitOfWorkFactory) write(records []parcel.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary record file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary record file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temporary record file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temporary record file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}

type repository struct {
	uow *FileUnitOfWork
}

func (r *repository) ReplaceAll(ctx context.Context, records []parcel.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := make([]parcel.Record, len(records))
	copy(staged, records)

	if !r.uow.open {
		return r.uow.factory.write(staged)
	}
	r.uow.staged, r.uow.dirty = staged, true
	return nil
}

func (r *repository) LoadAll(ctx context.Context) ([]parcel.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.uow.open && r.uow.dirty {
		out := make([]parcel.Record, len(r.uow.staged))
		copy(out, r.uow.staged)
		return out, nil
	}
	return r.uow.factory.read()
}
