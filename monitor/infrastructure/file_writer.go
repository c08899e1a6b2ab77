// Package infrastructure provides concrete implementations of the monitor's
// domain abstractions: serial sensors, the telemetry file, the systemd
// heartbeat, console rendering and command-line configuration.
package infrastructure

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// FileWriter provides a buffered append-only file writer
// that flushes data at regular intervals and can reopen its file.
type FileWriter struct {
	fs            afero.Fs
	logPath       monitorDomain.LogPath
	logger        monitorDomain.Logger
	bufferSize    monitorDomain.BufferSize
	flushInterval monitorDomain.FlushInterval
	readyLock     sync.Mutex
	f             afero.File
	w             *bufio.Writer
	wLock         sync.Mutex
	ready         bool
}

// setReady manages the writer's availability.
func (fw *FileWriter) setReady(val bool) {
	fw.readyLock.Lock()
	defer fw.readyLock.Unlock()
	fw.ready = val
}

// IsReady returns true if the file writer is ready to accept write operations.
func (fw *FileWriter) IsReady() bool {
	fw.readyLock.Lock()
	defer fw.readyLock.Unlock()
	return fw.ready
}

// Path returns the file the writer appends to.
func (fw *FileWriter) Path() monitorDomain.LogPath {
	return fw.logPath
}

// Open opens the file for appending, creating it if it doesn't exist,
// and marks the writer as ready.
func (fw *FileWriter) Open(ctx context.Context) error {
	if err := fw.connect(ctx); err != nil {
		return err
	}
	fw.setReady(true)
	return nil
}

// Reconnect closes the current file and opens it again.
// The writer stays not ready when the file cannot be reopened.
func (fw *FileWriter) Reconnect(ctx context.Context) error {
	fw.logger.Info("reopening %s", fw.logPath)
	_ = fw.Close()
	return fw.Open(ctx)
}

// flush forces all buffered data to be written to the underlying file.
func (fw *FileWriter) flush() error {
	fw.wLock.Lock()
	defer fw.wLock.Unlock()
	if fw.w == nil {
		return nil
	}
	fw.logger.Debug("flushing buffer")
	return fw.w.Flush()
}

// Close flushes any remaining buffered data and closes the file handle.
// Closing an already closed writer is a no-op.
func (fw *FileWriter) Close() error {
	fw.setReady(false)
	fw.wLock.Lock()
	defer fw.wLock.Unlock()

	var errs []error
	if fw.w != nil {
		if err := fw.w.Flush(); err != nil {
			fw.logger.Error("error on flushing buffer: %s", err.Error())
			errs = append(errs, err)
		}
		fw.w = nil
	}

	if fw.f != nil {
		if err := fw.f.Close(); err != nil {
			fw.logger.Error("error on closing file: %s", err.Error())
			errs = append(errs, err)
		}
		fw.f = nil
	}
	return errors.Join(errs...)
}

// connect opens the log file and initializes the buffered writer.
func (fw *FileWriter) connect(_ context.Context) error {
	f, w, err := fw.openBufferedFile(string(fw.logPath), fw.bufferSize)
	if err != nil {
		fw.logger.Error("error on opening file: %s", err.Error())
		return fmt.Errorf("error on opening file: %w", err)
	}

	fw.wLock.Lock()
	defer fw.wLock.Unlock()
	fw.f = f
	fw.w = w

	return nil
}

// Write appends data to the buffer.
func (fw *FileWriter) Write(data []byte) error {
	if !fw.IsReady() {
		return fmt.Errorf("file writer is not ready")
	}
	fw.wLock.Lock()
	defer fw.wLock.Unlock()
	if _, err := fw.w.Write(data); err != nil {
		return err
	}
	return nil
}

// openBufferedFile opens a file for append operations and wraps it with a buffered writer.
func (fw *FileWriter) openBufferedFile(name string, bufferSize monitorDomain.BufferSize) (afero.File, *bufio.Writer, error) {
	f, err := fw.fs.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	w := bufio.NewWriterSize(f, int(bufferSize))
	return f, w, nil
}

// Start flushes the buffer every flush interval until ctx is cancelled,
// then closes the writer.
func (fw *FileWriter) Start(ctx context.Context) {
	defer func() {
		if err := fw.Close(); err != nil {
			fw.logger.Error("error on closing file writer: %s", err.Error())
		}
	}()

	ticker := time.NewTicker(time.Duration(fw.flushInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fw.flush(); err != nil {
				fw.logger.Error("error on flushing buffer: %s", err.Error())
			}
		}
	}
}

// NewFileWriter creates a new FileWriter on the given filesystem.
// The writer is not ready until Open succeeds.
func NewFileWriter(
	fs afero.Fs,
	logPath monitorDomain.LogPath,
	bufferSize monitorDomain.BufferSize,
	flushInterval monitorDomain.FlushInterval,
	logger monitorDomain.Logger,
) *FileWriter {
	return &FileWriter{
		fs:            fs,
		logPath:       logPath,
		bufferSize:    bufferSize,
		flushInterval: flushInterval,
		logger:        logger,
	}
}
