package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/klauspost/compress/gzip"
)

// NewFileWriter creates a new FileWriter that writes to a gzip-compressed file using a buffer.
func NewFileWriter(filename string) (FileWriter, error) {
	_, err := os.Stat(filename)
	if err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	gzipWriter := gzip.NewWriter(file)
	return &fileWriter{
		buffer: bufio.NewWriter(gzipWriter),
		closer: multiCloser{gzipWriter, file},
	}, nil
}

//go:generate mockgen -source file_writer.go -destination file_writer_mock.go -package program

type FileWriter interface {
	// WriteData writes a byte slice of any size to the file.
	WriteData(data []byte) error
	// WriteUint32 writes a big-endian encoded uint32 value to the file.
	WriteUint32(data uint32) error
	// WriteUint8 writes a single byte (uint8) to the file.
	WriteUint8(data uint8) error
	Close() error
}

// WriteBuffer is a wrapper around necessary interfaces for writing data to a file for mocking purposes.
type WriteBuffer interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

type fileWriter struct {
	buffer WriteBuffer
	closer io.Closer
}

func (f *fileWriter) WriteData(data []byte) error {
	_, err := f.buffer.Write(data)
	if err != nil {
		return fmt.Errorf("error writing []byte to buffer: %w", err)
	}
	return nil
}

func (f *fileWriter) WriteUint32(data uint32) error {
	_, err := f.buffer.Write(bigendian.Uint32ToBytes(data))
	if err != nil {
		return fmt.Errorf("error writing uint32 to buffer: %w", err)
	}
	return nil
}

func (f *fileWriter) WriteUint8(data uint8) error {
	err := f.buffer.WriteByte(data)
	if err != nil {
		return fmt.Errorf("error writing uint8 to buffer: %w", err)
	}
	return nil
}

func (f *fileWriter) Close() error {
	// Flush the buffer to ensure all data is written to the file
	// then close the file
	return errors.Join(f.buffer.Flush(), f.closer.Close())
}

// multiCloser closes all closers in order.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
