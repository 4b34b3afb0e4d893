package forth

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Image header: 8 fixed bytes followed by an 8-byte little-endian core
// size, then the raw cells. The header's shape mirrors libforth's
// save/load preamble (magic, cell width, format version, endianness
// flag); this implementation always writes imageEndianLE and rejects
// anything else on load, rather than adapting to the host's native
// order.
const (
	imageMagic0 = 0xFF
	imageMagic1 = '4'
	imageMagic2 = 'T'
	imageMagic3 = 'H'
	imageVersion = 0x02
	imageEndianLE = 1
	imageTrailer = 0xFF
)

var errBadImage = fmt.Errorf("not a libforth core image")

// SaveCore writes the VM's entire cell array to w, bit-exact: the data
// and return stacks are included as ordinary cells (whatever was last
// written there), since the stack pointer itself lives outside m and is
// not part of the image.
func (vm *VM) SaveCore(w io.Writer) error {
	if vm.Invalid() {
		return fmt.Errorf("save core: interpreter is invalid")
	}
	header := []byte{
		imageMagic0, imageMagic1, imageMagic2, imageMagic3,
		byte(cellByteWidth()), imageVersion, imageEndianLE, imageTrailer,
	}
	if _, err := w.Write(header); err != nil {
		return err
	}

	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(len(vm.m)))
	if _, err := w.Write(sizeBuf[:]); err != nil {
		return err
	}

	buf := make([]byte, cellByteWidth())
	for _, c := range vm.m {
		putCell(buf, c)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// LoadCore reads an image written by SaveCore into a freshly constructed
// VM, applying opts after the raw cells are restored but before
// makeDefault re-derives the host-side fields — most importantly the data
// stack pointer, which always comes back empty, matching
// forth_make_default being re-run on every load.
func LoadCore(r io.Reader, opts ...VMOption) (*VM, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	if header[0] != imageMagic0 || header[1] != imageMagic1 ||
		header[2] != imageMagic2 || header[3] != imageMagic3 ||
		header[7] != imageTrailer {
		return nil, errBadImage
	}
	if header[5] != imageVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errBadImage, header[5])
	}
	if header[6] != imageEndianLE {
		return nil, fmt.Errorf("%w: unsupported endianness", errBadImage)
	}
	cellWidth := int(header[4])
	if cellWidth != cellByteWidth() {
		return nil, fmt.Errorf("%w: cell width %d does not match this build's %d", errBadImage, cellWidth, cellByteWidth())
	}

	var sizeBuf [8]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, err
	}
	size := int(binary.LittleEndian.Uint64(sizeBuf[:]))
	if size < minCoreSize {
		return nil, fmt.Errorf("%w: core size %d below minimum", errBadImage, size)
	}

	vm := &VM{m: make([]Cell, size)}
	buf := make([]byte, cellWidth)
	for i := range vm.m {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		vm.m[i] = getCell(buf)
	}

	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)
	vm.makeDefault()
	return vm, nil
}

// DumpCore writes a human-readable listing of non-zero cells, one per
// line, for debugging; it is not a format LoadCore can read back.
func (vm *VM) DumpCore(w io.Writer) error {
	for i, c := range vm.m {
		if c == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t%d\n", i, int64(c)); err != nil {
			return err
		}
	}
	return nil
}

func putCell(buf []byte, c Cell) {
	v := uint64(c)
	for i := range buf {
		buf[i] = byte(v)
		v >>= 8
	}
}

func getCell(buf []byte) Cell {
	var v uint64
	for i := len(buf) - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return Cell(v)
}
