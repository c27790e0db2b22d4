package cpu

// Every handler runs after the opcode fetch with PC pointing at the
// first operand byte.

func (p *Chip) iLDA(o Opcode) error {
	return p.load(o, &p.A)
}

func (p *Chip) iLDX(o Opcode) error {
	return p.load(o, &p.X)
}

func (p *Chip) iLDY(o Opcode) error {
	return p.load(o, &p.Y)
}

func (p *Chip) load(o Opcode, reg *uint8) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	p.loadRegister(reg, p.readOperand(op))
	return nil
}

func (p *Chip) iSTA(o Opcode) error {
	return p.store(o, p.A)
}

func (p *Chip) iSTZ(o Opcode) error {
	return p.store(o, 0x00)
}

func (p *Chip) store(o Opcode, val uint8) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	return p.writeOperand(o, op, val)
}

func (p *Chip) iCMP(o Opcode) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	p.compare(p.A, p.readOperand(op))
	return nil
}

func (p *Chip) compare(reg uint8, val uint8) {
	p.P &^= P_CARRY
	if reg >= val {
		p.P |= P_CARRY
	}
	res := reg - val
	p.zeroCheck(res)
	p.negativeCheck(res)
}

// iTAM copies A into every MPR selected by the mask operand.
func (p *Chip) iTAM(o Opcode) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	mask := p.readOperand(op)
	p.bus.Idle()
	p.bus.Idle()
	p.bus.Idle()
	for i := 0; i < 8; i++ {
		if mask&(1<<uint(i)) != 0 {
			p.bus.SetMPR(i, p.A)
		}
	}
	p.log.Info("TAM %.2X <- %.2X", mask, p.A)
	return nil
}

// iTMA loads A from the lowest MPR selected by the mask operand.
func (p *Chip) iTMA(o Opcode) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	mask := p.readOperand(op)
	p.bus.Idle()
	p.bus.Idle()
	for i := 0; i < 8; i++ {
		if mask&(1<<uint(i)) != 0 {
			p.A = p.bus.MPR(i)
			break
		}
	}
	return nil
}

func (p *Chip) iJMP(o Opcode) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	p.bus.Idle()
	p.PC = op.addr
	return nil
}

// iJSR pushes the address of the last byte of the instruction (high byte first).
func (p *Chip) iJSR(o Opcode) error {
	op, err := p.resolve(o)
	if err != nil {
		return err
	}
	ret := p.PC - 1
	p.pushStack(uint8(ret >> 8))
	p.pushStack(uint8(ret & 0xFF))
	p.log.Info("JSR %.4X (ret %.4X)", op.addr, ret)
	p.PC = op.addr
	return nil
}

func (p *Chip) iRTS(Opcode) error {
	p.dummy()
	lo := p.popStack()
	hi := p.popStack()
	p.bus.Idle()
	p.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	return nil
}

func (p *Chip) iRTI(Opcode) error {
	p.P = p.popStack()
	lo := p.popStack()
	hi := p.popStack()
	p.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

// iTII copies len bytes from src to dst, both incrementing. A, X and Y are
// preserved through the stack as the chip does.
func (p *Chip) iTII(Opcode) error {
	start := p.clk.Counter
	src := p.fetch16()
	dst := p.fetch16()
	n := p.fetch16()

	p.pushStack(p.Y)
	p.pushStack(p.A)
	p.writeStack(p.X)

	copyStart := p.clk.Counter
	count := n
	for {
		// A length of 0 copies 65535 bytes.
		count--
		if count == 0 {
			break
		}
		p.bus.Write(dst, p.bus.Read(src))
		src++
		dst++
	}
	copied := p.clk.Counter - copyStart

	p.X = p.readStack()
	p.A = p.popStack()
	p.Y = p.popStack()

	total := p.clk.Counter - start
	p.log.Info("BLK TII: ticks total:%d copy:%d overhead:%d len:%.4X", total, copied, total-copied, n)
	return nil
}

func (p *Chip) branch(cond bool) {
	off := p.fetch()
	if !cond {
		return
	}
	// Taken branches spend 2 internal cycles.
	p.bus.Idle()
	p.bus.Idle()
	p.PC += uint16(int16(int8(off)))
}

func (p *Chip) iBEQ(Opcode) error {
	p.branch(p.P&P_ZERO != 0)
	return nil
}

func (p *Chip) iBNE(Opcode) error {
	p.branch(p.P&P_ZERO == 0)
	return nil
}

func (p *Chip) iBRA(Opcode) error {
	p.branch(true)
	return nil
}

func (p *Chip) iSEI(Opcode) error {
	p.dummy()
	p.P |= P_INTERRUPT
	return nil
}

func (p *Chip) iCLI(Opcode) error {
	p.dummy()
	p.P &^= P_INTERRUPT
	return nil
}

func (p *Chip) iCLD(Opcode) error {
	p.dummy()
	p.P &^= P_DECIMAL
	return nil
}

func (p *Chip) iCSH(Opcode) error {
	p.dummy()
	p.setFast(true)
	return nil
}

func (p *Chip) iCSL(Opcode) error {
	p.dummy()
	p.setFast(false)
	return nil
}

func (p *Chip) iCLA(Opcode) error {
	p.dummy()
	p.A = 0
	return nil
}

func (p *Chip) iCLX(Opcode) error {
	p.dummy()
	p.X = 0
	return nil
}

func (p *Chip) iCLY(Opcode) error {
	p.dummy()
	p.Y = 0
	return nil
}

func (p *Chip) iINX(Opcode) error {
	p.dummy()
	p.loadRegister(&p.X, p.X+1)
	return nil
}

func (p *Chip) iINY(Opcode) error {
	p.dummy()
	p.loadRegister(&p.Y, p.Y+1)
	return nil
}

func (p *Chip) iDEX(Opcode) error {
	p.dummy()
	p.loadRegister(&p.X, p.X-1)
	return nil
}

func (p *Chip) iDEY(Opcode) error {
	p.dummy()
	p.loadRegister(&p.Y, p.Y-1)
	return nil
}

func (p *Chip) iTAX(Opcode) error {
	p.dummy()
	p.loadRegister(&p.X, p.A)
	return nil
}

func (p *Chip) iTXA(Opcode) error {
	p.dummy()
	p.loadRegister(&p.A, p.X)
	return nil
}

// iTXS doesn't touch flags.
func (p *Chip) iTXS(Opcode) error {
	p.dummy()
	p.SP = p.X
	return nil
}

func (p *Chip) iNOP(Opcode) error {
	p.dummy()
	return nil
}
