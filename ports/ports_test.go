package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullPPURegisterMirroring(t *testing.T) {
	p := &NullPPU{}
	p.Write(0, 0x80)
	assert.Equal(t, byte(0x80), p.Read(8)) // reg&7 mirrors register 0
}

func TestNullPPUOAMDMA(t *testing.T) {
	p := &NullPPU{}
	var data [256]byte
	data[10] = 0x55
	p.OAMDMA(data)
	assert.Equal(t, 1, p.DMACount)
	assert.Equal(t, byte(0x55), p.OAM[10])
}

func TestNullControllerRecordsStrobe(t *testing.T) {
	c := &NullController{}
	c.WriteStrobe(1)
	assert.Equal(t, byte(1), c.Strobe)
	assert.Equal(t, byte(0), c.Read())
}

func TestNullAPUStoresRegisters(t *testing.T) {
	a := &NullAPU{}
	a.Write(0x4000, 0x0f)
	assert.Equal(t, byte(0x0f), a.Regs[0])
	assert.Equal(t, byte(0), a.ReadStatus())
}
