// Package cartridge parses the iNES cartridge image format and
// implements the identity (mapper 0 / NROM) PRG/CHR mapping that
// backs the bus.MapperPort the CPU core talks to. Anything beyond
// that — bank switching, CHR-RAM writes for mapper chips other than
// NROM, battery-backed save RAM — is out of scope; see spec.md §1.
package cartridge

import (
	"fmt"
	"io"

	"github.com/Alenthus/nestake/mask"
)

const (
	headerSize  = 16
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
	trainerSize = 512
)

var magic = [4]byte{0x4E, 0x45, 0x53, 0x1A} // "NES\x1a"

// MirrorMode describes how the PPU's two nametables are mirrored. The
// CPU core never consults this itself; it is surfaced for a future
// PPU to read off the cartridge.
type MirrorMode int

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

// Header is the parsed 16-byte iNES header described in spec.md §6.2.
type Header struct {
	PRGBanks  uint8 // 16 KiB units
	CHRBanks  uint8 // 8 KiB units; 0 means CHR RAM
	Flags6    byte
	Flags7    byte
	HasTrainer bool
}

// Mirroring reports the nametable mirroring named by the header.
// Four-screen (Flags6 bit 3) overrides the single mirroring bit.
func (h *Header) Mirroring() MirrorMode {
	if mask.IsSet(h.Flags6, mask.I5) { // bit 3: four-screen
		return MirrorFourScreen
	}
	if mask.IsSet(h.Flags6, mask.I8) { // bit 0: vertical when set
		return MirrorVertical
	}
	return MirrorHorizontal
}

// Mapper returns the 8-bit mapper number assembled from the low
// nibble in Flags6 and the high nibble in Flags7.
func (h *Header) Mapper() uint8 {
	low := mask.First(h.Flags6, mask.I4)
	high := mask.First(h.Flags7, mask.I4)
	return high<<4 | low
}

// CartridgeLoadError reports why an iNES image could not be loaded:
// bad magic, a truncated image, or a PRG bank count of zero.
type CartridgeLoadError struct {
	Reason string
}

func (e *CartridgeLoadError) Error() string {
	return fmt.Sprintf("cartridge load error: %s", e.Reason)
}

// ParseHeader reads and validates the 16-byte iNES header from r.
func ParseHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &CartridgeLoadError{Reason: "truncated header: " + err.Error()}
	}
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != magic[3] {
		return nil, &CartridgeLoadError{Reason: "bad iNES magic"}
	}
	h := &Header{
		PRGBanks: buf[4],
		CHRBanks: buf[5],
		Flags6:   buf[6],
		Flags7:   buf[7],
	}
	h.HasTrainer = mask.IsSet(h.Flags6, mask.I6) // bit 2
	if h.PRGBanks == 0 {
		return nil, &CartridgeLoadError{Reason: "PRG bank count is zero"}
	}
	return h, nil
}

// Cartridge owns the PRG and CHR images decoded from an iNES file and
// implements bus.MapperPort with NROM (mapper 0) addressing: a single
// 16 KiB PRG bank is mirrored across $8000-$FFFF, two banks are mapped
// directly. Any other mapper number is accepted but addressed the
// same way, since bank switching is out of scope.
type Cartridge struct {
	Header    *Header
	PRG       []byte
	CHR       []byte
	Mapper    uint8
	Mirroring MirrorMode
}

// LoadCartridge parses an iNES image from r: header, optional trainer
// (skipped, not emulated), PRG image, then CHR image (or 8 KiB of CHR
// RAM when the header declares zero CHR banks).
func LoadCartridge(r io.Reader) (*Cartridge, error) {
	h, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}
	if h.HasTrainer {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, &CartridgeLoadError{Reason: "truncated trainer: " + err.Error()}
		}
	}

	prg := make([]byte, int(h.PRGBanks)*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, &CartridgeLoadError{Reason: "truncated PRG image: " + err.Error()}
	}

	var chr []byte
	if h.CHRBanks == 0 {
		chr = make([]byte, chrBankSize) // CHR RAM
	} else {
		chr = make([]byte, int(h.CHRBanks)*chrBankSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, &CartridgeLoadError{Reason: "truncated CHR image: " + err.Error()}
		}
	}

	return &Cartridge{
		Header:    h,
		PRG:       prg,
		CHR:       chr,
		Mapper:    h.Mapper(),
		Mirroring: h.Mirroring(),
	}, nil
}

// PrgRead implements bus.MapperPort. Addresses below $8000 are
// cartridge-resident expansion RAM/registers on some boards; none is
// modeled here, so they read as open bus.
func (c *Cartridge) PrgRead(addr uint16) byte {
	if addr < 0x8000 {
		return 0
	}
	off := int(addr-0x8000) % len(c.PRG)
	return c.PRG[off]
}

// PrgWrite implements bus.MapperPort. NROM carries no writable PRG
// region, so every write is discarded.
func (c *Cartridge) PrgWrite(addr uint16, value byte) {}
