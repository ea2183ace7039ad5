/*
Package uef reads files from UEF tape images of BBC Micro cassettes.

A UEF file is the 10 byte magic "UEF File!" with a NUL terminator, a two byte
version and then a sequence of chunks, each with a 16-bit ID and a 32-bit
length, both little-endian. The whole file is often gzip compressed.

Only chunk 0x0100 (data bytes with implicit start and stop bits) carries tape
data. That data is a series of cassette filing system blocks:

	0x2a       sync byte
	name       1 to 10 characters, NUL terminated
	4 bytes    load address
	4 bytes    execution address
	2 bytes    block number
	2 bytes    data length
	1 byte     flags, bit 7 set on the last block of a file
	4 bytes    next file address
	2 bytes    header CRC, big-endian
	data       data length bytes
	2 bytes    data CRC, big-endian, absent when the length is zero
*/
package uef

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bodgit/dunjunz/crc16"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	magic = "UEF File!\x00"

	headerSize      = len(magic) + 2
	chunkHeaderSize = 6

	chunkImplicitData = 0x0100

	syncByte    = 0x2a
	maxName     = 10
	blockFields = 4 + 4 + 2 + 2 + 1 + 4
	lastBlock   = 0x80
)

var (
	// ErrNotUEF is returned when the input does not start with the UEF magic
	ErrNotUEF = errors.New("uef: not a UEF file")
	// ErrTruncated is returned when a chunk or block runs past the end of the
	// input
	ErrTruncated = errors.New("uef: truncated")
	// ErrBadCRC is returned when a tape block fails its header or data CRC
	ErrBadCRC = errors.New("uef: bad CRC")
)

// File is a complete file assembled from one or more tape blocks.
type File struct {
	Name string
	Load uint32
	Exec uint32
	Data []byte
}

type block struct {
	name   string
	load   uint32
	exec   uint32
	number uint16
	flags  byte
	data   []byte
}

type decoder struct {
	b   []byte
	pos int
}

func (d *decoder) next(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.b) {
		return nil, ErrTruncated
	}
	p := d.b[d.pos : d.pos+n]
	d.pos += n
	return p, nil
}

func (d *decoder) checkCRC(p []byte, what string) error {
	stored, err := d.next(crc16.Size)
	if err != nil {
		return err
	}
	if want, got := binary.BigEndian.Uint16(stored), crc16.Checksum(p); want != got {
		return errors.Wrapf(ErrBadCRC, "%s: stored %#04x, computed %#04x", what, want, got)
	}
	return nil
}

func (d *decoder) readBlock() (*block, error) {
	start := d.pos

	i := bytes.IndexByte(d.b[start:], 0)
	if i < 0 {
		return nil, ErrTruncated
	}
	if i == 0 || i > maxName {
		return nil, errors.Errorf("uef: bad block name at %#x", start)
	}
	name := string(d.b[start : start+i])
	d.pos += i + 1

	fields, err := d.next(blockFields)
	if err != nil {
		return nil, err
	}
	if err := d.checkCRC(d.b[start:d.pos], "header of "+name); err != nil {
		return nil, err
	}

	blk := &block{
		name:   name,
		load:   binary.LittleEndian.Uint32(fields[0:]),
		exec:   binary.LittleEndian.Uint32(fields[4:]),
		number: binary.LittleEndian.Uint16(fields[8:]),
		flags:  fields[12],
	}

	n := int(binary.LittleEndian.Uint16(fields[10:]))
	if n == 0 {
		return blk, nil
	}

	if blk.data, err = d.next(n); err != nil {
		return nil, err
	}
	if err := d.checkCRC(blk.data, "data of "+name); err != nil {
		return nil, err
	}

	return blk, nil
}

func (d *decoder) readBlocks() ([]*block, error) {
	var blocks []*block
	for {
		i := bytes.IndexByte(d.b[d.pos:], syncByte)
		if i < 0 {
			return blocks, nil
		}
		d.pos += i + 1

		blk, err := d.readBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
	}
}

func assemble(blocks []*block) []File {
	var files []File
	var current *File
	for _, blk := range blocks {
		if blk.number == 0 || current == nil {
			if current != nil {
				files = append(files, *current)
			}
			current = &File{
				Name: blk.name,
				Load: blk.load,
				Exec: blk.exec,
			}
		}
		current.Data = append(current.Data, blk.data...)
		if blk.flags&lastBlock != 0 {
			files = append(files, *current)
			current = nil
		}
	}
	if current != nil {
		files = append(files, *current)
	}
	return files
}

func tapeData(b []byte) ([]byte, error) {
	if len(b) < headerSize || string(b[:len(magic)]) != magic {
		return nil, ErrNotUEF
	}

	d := decoder{b: b, pos: headerSize}

	var tape []byte
	for d.pos < len(d.b) {
		hdr, err := d.next(chunkHeaderSize)
		if err != nil {
			return nil, errors.Wrap(err, "chunk header")
		}
		id := binary.LittleEndian.Uint16(hdr[0:])
		n := binary.LittleEndian.Uint32(hdr[2:])
		if uint64(n) > uint64(len(d.b)-d.pos) {
			return nil, errors.Wrapf(ErrTruncated, "chunk %#04x", id)
		}
		data, _ := d.next(int(n))

		if id == chunkImplicitData {
			tape = append(tape, data...)
		}
	}

	return tape, nil
}

// Decode reads a UEF image, optionally gzip compressed, and returns the files
// found on the tape in order.
func Decode(r io.Reader) ([]File, error) {
	br := bufio.NewReader(r)

	var rd io.Reader = br
	if sig, err := br.Peek(2); err == nil && sig[0] == 0x1f && sig[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		rd = zr
	}

	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	tape, err := tapeData(b)
	if err != nil {
		return nil, err
	}

	d := decoder{b: tape}
	blocks, err := d.readBlocks()
	if err != nil {
		return nil, err
	}

	return assemble(blocks), nil
}
