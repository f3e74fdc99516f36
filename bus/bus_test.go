package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMMirroring(t *testing.T) {
	b := &Bus{}
	b.Write8(0x0000, 0x42)
	assert.Equal(t, byte(0x42), b.Read8(0x0000))
	assert.Equal(t, byte(0x42), b.Read8(0x0800))
	assert.Equal(t, byte(0x42), b.Read8(0x1000))
	assert.Equal(t, byte(0x42), b.Read8(0x1800))
}

func TestUnmappedReadsZero(t *testing.T) {
	b := &Bus{}
	assert.Equal(t, byte(0), b.Read8(0x4008))
	assert.Equal(t, byte(0), b.Read8(0x2000)) // no PPU wired
}

type fakeMapper struct {
	prg [0x8000]byte
}

func (m *fakeMapper) PrgRead(addr uint16) byte      { return m.prg[addr&0x7fff] }
func (m *fakeMapper) PrgWrite(addr uint16, v byte)  { m.prg[addr&0x7fff] = v }

func TestMapperDelegation(t *testing.T) {
	m := &fakeMapper{}
	b := &Bus{Mapper: m}
	b.Write8(0x8000, 0x7e)
	assert.Equal(t, byte(0x7e), b.Read8(0x8000))
	assert.Equal(t, byte(0x7e), m.prg[0])
}

func TestRead16LittleEndian(t *testing.T) {
	b := &Bus{}
	b.Write8(0x0010, 0x34)
	b.Write8(0x0011, 0x12)
	assert.Equal(t, uint16(0x1234), b.Read16(0x0010))
}

func TestRead16WrapPageBoundaryBug(t *testing.T) {
	b := &Bus{}
	b.Write8(0x10ff, 0x34)
	b.Write8(0x1000, 0x12) // NOT 0x1100
	b.Write8(0x1100, 0xab)
	assert.Equal(t, uint16(0x1234), b.Read16Wrap(0x10ff))
}

type fakePPU struct {
	regs    [8]byte
	oam     [256]byte
	dmaDone bool
}

func (p *fakePPU) Read(reg uint8) byte       { return p.regs[reg&7] }
func (p *fakePPU) Write(reg uint8, v byte)   { p.regs[reg&7] = v }
func (p *fakePPU) OAMDMA(data [256]byte) {
	p.oam = data
	p.dmaDone = true
}

func TestOAMDMACopiesSourcePage(t *testing.T) {
	ppu := &fakePPU{}
	b := &Bus{PPU: ppu}
	for i := 0; i < 256; i++ {
		b.Write8(0x0200+uint16(i), byte(i))
	}
	b.Write8(0x4014, 0x02)
	assert.True(t, ppu.dmaDone)
	for i := 0; i < 256; i++ {
		assert.Equal(t, byte(i), ppu.oam[i])
	}
}

func TestControllerStrobeBroadcast(t *testing.T) {
	c1 := &fakeController{}
	c2 := &fakeController{}
	b := &Bus{Controller1: c1, Controller2: c2}
	b.Write8(0x4016, 1)
	assert.Equal(t, byte(1), c1.strobe)
	assert.Equal(t, byte(1), c2.strobe)
}

type fakeController struct {
	strobe byte
}

func (c *fakeController) Read() byte          { return 0 }
func (c *fakeController) WriteStrobe(v byte) { c.strobe = v }
