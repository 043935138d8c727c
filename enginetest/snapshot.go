package enginetest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	zxcore "github.com/user-none/efuse/api"
)

// SZX container identifiers.
var (
	szxMagic      = [4]byte{'Z', 'X', 'S', 'T'}
	chunkZ80Regs  = [4]byte{'Z', '8', '0', 'R'}
	chunkSpecRegs = [4]byte{'S', 'P', 'C', 'R'}
	chunkRAMPage  = [4]byte{'R', 'A', 'M', 'P'}
)

const (
	szxMajor     = 1
	szxMinor     = 4
	szxMachine48 = 1
	pageSize     = 0x4000
)

// ramPages maps the 48K RAM pages to their addresses.
var ramPages = []struct {
	page uint8
	addr int
}{
	{5, 0x4000},
	{2, 0x8000},
	{0, 0xC000},
}

type szxHeader struct {
	Magic   [4]byte
	Major   uint8
	Minor   uint8
	Machine uint8
	Flags   uint8
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// WriteSnapshot serializes the machine and hands it to the environment's
// snapshot sink.
func (e *Engine) WriteSnapshot(name string) error {
	if e.SnapshotErr != nil {
		return e.SnapshotErr
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, szxHeader{szxMagic, szxMajor, szxMinor, szxMachine48, 0})

	writeChunk(&buf, chunkZ80Regs, e.regs)
	writeChunk(&buf, chunkSpecRegs, [8]uint8{e.border})
	for _, p := range ramPages {
		var body bytes.Buffer
		binary.Write(&body, binary.LittleEndian, uint16(0))
		body.WriteByte(p.page)
		body.Write(e.mem[p.addr : p.addr+pageSize])
		writeChunk(&buf, chunkRAMPage, body.Bytes())
	}

	return e.env.Snapshots.WriteSnapshot(name, buf.Bytes())
}

func writeChunk(w *bytes.Buffer, id [4]byte, body any) {
	var b bytes.Buffer
	if raw, ok := body.([]byte); ok {
		b.Write(raw)
	} else {
		binary.Write(&b, binary.LittleEndian, body)
	}
	binary.Write(w, binary.LittleEndian, chunkHeader{id, uint32(b.Len())})
	w.Write(b.Bytes())
}

// ReadSnapshot restores the machine. Nothing changes unless the whole
// snapshot parses.
func (e *Engine) ReadSnapshot(data []byte, format zxcore.SnapshotFormat) error {
	var (
		regs   registers
		border uint8
		mem    []byte
		err    error
	)
	switch format {
	case zxcore.SnapshotSZX:
		regs, border, mem, err = e.parseSZX(data)
	case zxcore.SnapshotZ80:
		regs, border, mem, err = e.parseZ80(data)
	default:
		err = fmt.Errorf("%w: unknown format %d", ErrBadSnapshot, format)
	}
	if err != nil {
		return err
	}

	e.regs = regs
	e.border = border
	copy(e.mem[romSize:], mem[romSize:])
	return nil
}

func (e *Engine) parseSZX(data []byte) (registers, uint8, []byte, error) {
	var (
		regs    registers
		border  uint8
		hdr     szxHeader
		gotRegs bool
	)
	mem := make([]byte, memSize)
	copy(mem, e.mem)

	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return regs, 0, nil, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	if hdr.Magic != szxMagic {
		return regs, 0, nil, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, hdr.Magic[:])
	}

	for {
		var ch chunkHeader
		err := binary.Read(r, binary.LittleEndian, &ch)
		if err == io.EOF {
			break
		}
		if err != nil {
			return regs, 0, nil, fmt.Errorf("%w: chunk header: %w", ErrBadSnapshot, err)
		}
		if int64(ch.Size) > int64(r.Len()) {
			return regs, 0, nil, fmt.Errorf("%w: chunk %q truncated", ErrBadSnapshot, ch.ID[:])
		}
		body := make([]byte, ch.Size)
		io.ReadFull(r, body)

		switch ch.ID {
		case chunkZ80Regs:
			if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &regs); err != nil {
				return regs, 0, nil, fmt.Errorf("%w: registers: %w", ErrBadSnapshot, err)
			}
			gotRegs = true
		case chunkSpecRegs:
			if len(body) > 0 {
				border = body[0] & 7
			}
		case chunkRAMPage:
			if len(body) != 3+pageSize {
				return regs, 0, nil, fmt.Errorf("%w: RAM page size %d", ErrBadSnapshot, len(body))
			}
			addr := -1
			for _, p := range ramPages {
				if p.page == body[2] {
					addr = p.addr
				}
			}
			if addr < 0 {
				return regs, 0, nil, fmt.Errorf("%w: RAM page %d", ErrBadSnapshot, body[2])
			}
			copy(mem[addr:addr+pageSize], body[3:])
		}
	}

	if !gotRegs {
		return regs, 0, nil, fmt.Errorf("%w: no registers", ErrBadSnapshot)
	}
	return regs, border, mem, nil
}

// z80HeaderSize is the version 1 .z80 header.
const z80HeaderSize = 30

// parseZ80 reads an uncompressed version 1 .z80 snapshot.
func (e *Engine) parseZ80(data []byte) (registers, uint8, []byte, error) {
	var regs registers
	if len(data) < z80HeaderSize+3*pageSize {
		return regs, 0, nil, fmt.Errorf("%w: z80 snapshot too short", ErrBadSnapshot)
	}
	h := data[:z80HeaderSize]
	flags := h[12]
	if flags == 0xFF {
		flags = 1
	}
	if flags&0x20 != 0 {
		return regs, 0, nil, fmt.Errorf("%w: compressed z80 snapshots are not supported", ErrBadSnapshot)
	}
	pc := binary.LittleEndian.Uint16(h[6:])
	if pc == 0 {
		return regs, 0, nil, fmt.Errorf("%w: z80 version 2+ snapshots are not supported", ErrBadSnapshot)
	}

	regs = registers{
		AF:   uint16(h[0])<<8 | uint16(h[1]),
		BC:   binary.LittleEndian.Uint16(h[2:]),
		HL:   binary.LittleEndian.Uint16(h[4:]),
		PC:   pc,
		SP:   binary.LittleEndian.Uint16(h[8:]),
		I:    h[10],
		R:    h[11]&0x7f | (flags&1)<<7,
		DE:   binary.LittleEndian.Uint16(h[13:]),
		IY:   binary.LittleEndian.Uint16(h[23:]),
		IX:   binary.LittleEndian.Uint16(h[25:]),
		IFF1: h[27],
		IFF2: h[28],
		IM:   h[29] & 3,
	}
	border := (flags >> 1) & 7

	mem := make([]byte, memSize)
	copy(mem, e.mem[:romSize])
	copy(mem[romSize:], data[z80HeaderSize:z80HeaderSize+3*pageSize])
	return regs, border, mem, nil
}

// PC returns the program counter.
func (e *Engine) PC() uint16 {
	return e.regs.PC
}
