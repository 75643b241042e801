package cpu

import "github.com/go8080/i8080/isa"

func (c *CPU) execute(in isa.Instruction) {
	switch in.Kind {
	case isa.NOP:
		// no-op

	case isa.HLT:
		c.halted = true

	case isa.RLC:
		bit7 := c.A >> 7
		c.A = c.A<<1 | bit7
		c.Flags.CY = bit7 != 0

	case isa.RRC:
		bit0 := c.A & 1
		c.A = c.A>>1 | bit0<<7
		c.Flags.CY = bit0 != 0

	case isa.RAL:
		carryIn := byte(0)
		if c.Flags.CY {
			carryIn = 1
		}
		bit7 := c.A >> 7
		c.A = c.A<<1 | carryIn
		c.Flags.CY = bit7 != 0

	case isa.RAR:
		carryIn := byte(0)
		if c.Flags.CY {
			carryIn = 1
		}
		bit0 := c.A & 1
		c.A = c.A>>1 | carryIn<<7
		c.Flags.CY = bit0 != 0

	case isa.CMA:
		c.A = ^c.A

	case isa.DAA:
		c.daa()

	case isa.STC:
		c.Flags.CY = true

	case isa.CMC:
		c.Flags.CY = !c.Flags.CY

	case isa.XCHG:
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L

	case isa.PCHL:
		c.PC = c.hl()

	case isa.SPHL:
		c.SP = c.hl()

	case isa.XTHL:
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		c.writeByte(c.SP, c.L)
		c.writeByte(c.SP+1, c.H)
		c.H, c.L = hi, lo

	case isa.DI:
		c.intEnable = false

	case isa.EI:
		c.intEnable = true

	case isa.RET:
		c.PC = c.doPop()

	case isa.LXI:
		c.setPair(in.Pair, in.Addr)

	case isa.STAX:
		c.writeByte(c.pairValue(in.Pair), c.A)

	case isa.LDAX:
		c.A = c.readByte(c.pairValue(in.Pair))

	case isa.INX:
		c.setPair(in.Pair, c.pairValue(in.Pair)+1)

	case isa.DCX:
		c.setPair(in.Pair, c.pairValue(in.Pair)-1)

	case isa.DAD:
		hl := c.hl()
		operand := c.pairValue(in.Pair)
		sum := uint32(hl) + uint32(operand)
		c.setHL(uint16(sum))
		c.Flags.CY = sum > 0xFFFF

	case isa.PUSH:
		c.doPush(c.stackPairValue(in.Stack))

	case isa.POP:
		c.setStackPair(in.Stack, c.doPop())

	case isa.INR:
		v := c.readReg8(in.Reg)
		result := v + 1
		c.Flags.AC = v&0x0F == 0x0F
		c.updateZSP(result)
		c.writeReg8(in.Reg, result)

	case isa.DCR:
		v := c.readReg8(in.Reg)
		result := v - 1
		// Hardware implements DCR as an add of 0xFF, so AC follows addA's
		// carry-out polarity (set unless the low nibble borrows), not
		// subA's borrow polarity.
		c.Flags.AC = v&0x0F != 0
		c.updateZSP(result)
		c.writeReg8(in.Reg, result)

	case isa.MVI:
		c.writeReg8(in.Reg, in.Imm8)

	case isa.ADD:
		c.addA(c.readReg8(in.Reg), false)
	case isa.ADC:
		c.addA(c.readReg8(in.Reg), c.Flags.CY)
	case isa.SUB:
		c.subA(c.readReg8(in.Reg), false)
	case isa.SBB:
		c.subA(c.readReg8(in.Reg), c.Flags.CY)
	case isa.ANA:
		c.andA(c.readReg8(in.Reg))
	case isa.XRA:
		c.xorA(c.readReg8(in.Reg))
	case isa.ORA:
		c.orA(c.readReg8(in.Reg))
	case isa.CMP:
		c.cmpA(c.readReg8(in.Reg))

	case isa.MOV:
		c.writeReg8(in.Dst, c.readReg8(in.Reg))

	case isa.JMP:
		c.PC = in.Addr
	case isa.JNZ, isa.JZ, isa.JNC, isa.JC, isa.JPO, isa.JPE, isa.JP, isa.JM:
		if cc, ok := in.Condition(); ok && c.conditionHolds(cc) {
			c.PC = in.Addr
		}

	case isa.CALL:
		c.doCall(in.Addr)
	case isa.CNZ, isa.CZ, isa.CNC, isa.CC, isa.CPO, isa.CPE, isa.CP, isa.CM:
		if cc, ok := in.Condition(); ok && c.conditionHolds(cc) {
			c.doCall(in.Addr)
		}

	case isa.RNZ, isa.RZ, isa.RNC, isa.RC, isa.RPO, isa.RPE, isa.RP, isa.RM:
		if cc, ok := in.Condition(); ok && c.conditionHolds(cc) {
			c.PC = c.doPop()
		}

	case isa.SHLD:
		c.writeByte(in.Addr, c.L)
		c.writeByte(in.Addr+1, c.H)

	case isa.LHLD:
		c.L = c.readByte(in.Addr)
		c.H = c.readByte(in.Addr + 1)

	case isa.STA:
		c.writeByte(in.Addr, c.A)

	case isa.LDA:
		c.A = c.readByte(in.Addr)

	case isa.ADI:
		c.addA(in.Imm8, false)
	case isa.ACI:
		c.addA(in.Imm8, c.Flags.CY)
	case isa.SUI:
		c.subA(in.Imm8, false)
	case isa.SBI:
		c.subA(in.Imm8, c.Flags.CY)
	case isa.ANI:
		c.andA(in.Imm8)
	case isa.XRI:
		c.xorA(in.Imm8)
	case isa.ORI:
		c.orA(in.Imm8)
	case isa.CPI:
		c.cmpA(in.Imm8)

	case isa.IN:
		if r, ok := c.bus.(BusReader); ok {
			c.A = r.IN(in.Imm8)
		} else {
			c.A = 0
		}

	case isa.OUT:
		if c.bus != nil {
			c.bus.OUT(in.Imm8, c.A)
		}

	case isa.RST:
		c.doCall(uint16(in.Imm8) * 8)
	}
}

// addA adds operand (plus carryIn for ADC/ACI) into A, updating all five
// flags. AC is set on carry out of bit 3, matching the teacher's Z80 addA.
func (c *CPU) addA(operand byte, carryIn bool) {
	cin := byte(0)
	if carryIn {
		cin = 1
	}
	a := c.A
	sum := uint16(a) + uint16(operand) + uint16(cin)
	c.Flags.AC = (a&0x0F)+(operand&0x0F)+cin > 0x0F
	c.Flags.CY = sum > 0xFF
	c.A = byte(sum)
	c.updateZSP(c.A)
}

// subA subtracts operand (plus borrowIn for SBB/SBI) from A. AC is set on
// borrow out of bit 3, so it holds the complementary sense to addA's AC
// while still using a direct, non-inverted borrow test.
func (c *CPU) subA(operand byte, borrowIn bool) {
	bin := byte(0)
	if borrowIn {
		bin = 1
	}
	a := c.A
	diff := int16(a) - int16(operand) - int16(bin)
	c.Flags.AC = int16(a&0x0F)-int16(operand&0x0F)-int16(bin) < 0
	c.Flags.CY = diff < 0
	c.A = byte(diff)
	c.updateZSP(c.A)
}

func (c *CPU) andA(operand byte) {
	result := c.A & operand
	c.Flags.AC = (c.A|operand)&0x08 != 0
	c.Flags.CY = false
	c.A = result
	c.updateZSP(c.A)
}

func (c *CPU) xorA(operand byte) {
	c.A ^= operand
	c.Flags.AC = false
	c.Flags.CY = false
	c.updateZSP(c.A)
}

func (c *CPU) orA(operand byte) {
	c.A |= operand
	c.Flags.AC = false
	c.Flags.CY = false
	c.updateZSP(c.A)
}

// cmpA compares operand against A like subA, but discards the result byte:
// only the flags are visible to the program.
func (c *CPU) cmpA(operand byte) {
	a := c.A
	diff := int16(a) - int16(operand)
	c.Flags.AC = int16(a&0x0F)-int16(operand&0x0F) < 0
	c.Flags.CY = diff < 0
	c.updateZSP(byte(diff))
}

// daa applies the two-step BCD correction the manual specifies: first the
// low nibble is corrected if it exceeds 9 or AC is set, then the high
// nibble if it exceeds 9 or CY is set (after the low-nibble step may have
// carried into it).
func (c *CPU) daa() {
	correction := byte(0)
	cy := c.Flags.CY

	lo := c.A & 0x0F
	if lo > 9 || c.Flags.AC {
		correction |= 0x06
		c.Flags.AC = lo+0x06 > 0x0F
	} else {
		c.Flags.AC = false
	}

	hi := c.A >> 4
	if hi > 9 || cy || (hi == 9 && lo > 9) {
		correction |= 0x60
		cy = true
	}

	sum := uint16(c.A) + uint16(correction)
	c.A = byte(sum)
	c.Flags.CY = cy
	c.updateZSP(c.A)
}

func (c *CPU) doPush(v uint16) {
	hi, lo := unpack(v)
	c.SP--
	c.writeByte(c.SP, hi)
	c.SP--
	c.writeByte(c.SP, lo)
}

func (c *CPU) doPop() uint16 {
	lo := c.readByte(c.SP)
	c.SP++
	hi := c.readByte(c.SP)
	c.SP++
	return pack(hi, lo)
}

func (c *CPU) doCall(target uint16) {
	c.doPush(c.PC)
	c.PC = target
}
