// pkg/telemetry/log.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package telemetry

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/mmp/osd/pkg/util"
	"github.com/vmihailenco/msgpack/v5"
)

// Telemetry logs are a zstd stream of length-prefixed records: a
// little-endian uint32 byte count followed by that many bytes of msgpack,
// delta-encoded bytewise against the preceding record. Successive frames
// mostly repeat, so the deltas are largely zero runs that the zstd layer
// collapses. The prefix bounds each record so a reader can reject a
// corrupt frame without losing the rest of the stream.

// Records are small; anything past this is corruption.
const maxLogRecordBytes = 1 << 20

// A LogWriter records a stream of telemetry records for later replay.
type LogWriter struct {
	zw   *zstd.Encoder
	prev []byte
}

func NewLogWriter(w io.Writer) (*LogWriter, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("telemetry: zstd writer: %w", err)
	}
	return &LogWriter{zw: zw}, nil
}

// Write appends one record to the log.
func (lw *LogWriter) Write(rec *Record) error {
	b, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("telemetry: msgpack encode: %w", err)
	}

	payload := util.DeltaEncodeBytes(lw.prev, b)
	lw.prev = b

	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(payload)))
	if _, err := lw.zw.Write(n[:]); err != nil {
		return fmt.Errorf("telemetry: log write: %w", err)
	}
	if _, err := lw.zw.Write(payload); err != nil {
		return fmt.Errorf("telemetry: log write: %w", err)
	}
	return nil
}

// Close flushes the compressed stream. The underlying io.Writer is left
// open for the caller.
func (lw *LogWriter) Close() error {
	return lw.zw.Close()
}

// A LogReader replays records from a log written by LogWriter.
type LogReader struct {
	zr   *zstd.Decoder
	prev []byte
}

func NewLogReader(r io.Reader) (*LogReader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("telemetry: zstd reader: %w", err)
	}
	return &LogReader{zr: zr}, nil
}

// Read returns the next record in the log, io.EOF at the end.
func (lr *LogReader) Read() (*Record, error) {
	var n [4]byte
	if _, err := io.ReadFull(lr.zr, n[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("telemetry: truncated log: %w", err)
		}
		// io.EOF at a record boundary is the clean end of the log.
		return nil, err
	}
	sz := binary.LittleEndian.Uint32(n[:])
	if sz == 0 || sz > maxLogRecordBytes {
		return nil, fmt.Errorf("telemetry: implausible record size %d", sz)
	}
	payload := make([]byte, sz)
	if _, err := io.ReadFull(lr.zr, payload); err != nil {
		return nil, fmt.Errorf("telemetry: truncated record: %w", err)
	}

	b := util.DeltaDecodeBytes(lr.prev, payload)
	lr.prev = b

	rec := &Record{}
	if err := msgpack.Unmarshal(b, rec); err != nil {
		return nil, fmt.Errorf("telemetry: msgpack decode: %w", err)
	}
	return rec, nil
}

func (lr *LogReader) Close() {
	lr.zr.Close()
}
