package bus

import (
	"github.com/golang/glog"
)

// TriggerOAMDMA is called on a $4014 write. The transfer runs at the start
// of the next bus access, stealing its cycles from the CPU.
func (b *Bus) TriggerOAMDMA(page uint8) {
	b.oamDMAPending = true
	b.oamDMAPage = page
}

// serviceDMA runs any pending DMC or OAM transfer before a CPU access
func (b *Bus) serviceDMA() {
	if b.dmaActive {
		return
	}
	b.dmaActive = true
	b.serviceDMC()
	if b.oamDMAPending {
		b.oamDMAPending = false
		b.runOAMDMA(b.oamDMAPage)
	}
	b.dmaActive = false
}

// serviceDMC fetches a sample byte for the DMC: a halt cycle, a dummy
// cycle, an alignment cycle when needed, then the fetch.
func (b *Bus) serviceDMC() {
	address, pending := b.APU.DMCRequest()
	if !pending {
		return
	}
	b.tick()
	b.tick()
	if b.cycles&1 == 1 {
		b.tick()
	}
	value := b.Memory.Read(address)
	b.tick()
	b.APU.DMCFill(value)
}

// runOAMDMA copies a 256-byte page into OAM in 513 or 514 cycles
func (b *Bus) runOAMDMA(page uint8) {
	start := b.cycles
	base := uint16(page) << 8

	b.tick()
	if b.cycles&1 == 1 {
		b.tick()
	}
	for i := uint16(0); i < 256; i++ {
		b.serviceDMC()
		value := b.Memory.Read(base | i)
		b.tick()
		b.serviceDMC()
		b.PPU.WriteOAM(value)
		b.tick()
	}

	if glog.V(1) {
		glog.Infof("[DMA] OAM from $%04X took %d cycles", base, b.cycles-start)
	}
}
