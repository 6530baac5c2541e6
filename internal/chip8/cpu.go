package chip8

// Step fetches, decodes and executes a single instruction.
// Stack errors leave the machine state unchanged apart from the advanced program counter.
// Step panics if the machine is waiting for a key press.
func (m *Machine) Step() error {
	if m.wait.waiting {
		panic("chip8: Step called while waiting for a key press")
	}

	address := m.pc
	op := m.fetch()
	if m.tracer != nil {
		m.tracer(address, op)
	}
	return m.execute(op)
}

func (m *Machine) fetch() Opcode {
	hi := m.memory[m.pc&addressMask]
	lo := m.memory[(m.pc+1)&addressMask]
	m.pc += 2
	return DecodeOpcode(hi, lo)
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

//nolint:funlen,cyclop // one case per instruction class
func (m *Machine) execute(op Opcode) error {
	x, y := op.X(), op.Y()

	switch op.U() {
	case 0x0:
		switch op {
		case 0x00E0: // CLS
			m.display.Clear()
		case 0x00EE: // RET
			return m.ret()
		default:
			m.unknownOpcodes++
		}

	case 0x1: // JP addr
		m.pc = op.NNN()

	case 0x2: // CALL addr
		return m.call(op.NNN())

	case 0x3: // SE Vx, byte
		m.skipIf(m.v[x] == op.KK())

	case 0x4: // SNE Vx, byte
		m.skipIf(m.v[x] != op.KK())

	case 0x5: // SE Vx, Vy
		if op.N() != 0 {
			m.unknownOpcodes++
			return nil
		}
		m.skipIf(m.v[x] == m.v[y])

	case 0x6: // LD Vx, byte
		m.v[x] = op.KK()

	case 0x7: // ADD Vx, byte
		m.v[x] += op.KK()

	case 0x8:
		m.arithmetic(op)

	case 0x9: // SNE Vx, Vy
		if op.N() != 0 {
			m.unknownOpcodes++
			return nil
		}
		m.skipIf(m.v[x] != m.v[y])

	case 0xA: // LD I, addr
		m.i = op.NNN()

	case 0xB: // JP V0, addr
		m.pc = op.NNN() + uint16(m.v[0])

	case 0xC: // RND Vx, byte
		m.v[x] = m.random() & op.KK()

	case 0xD: // DRW Vx, Vy, nibble
		m.draw(m.v[x], m.v[y], op.N())

	case 0xE:
		switch op.KK() {
		case 0x9E: // SKP Vx
			m.skipIf(m.keys[m.v[x]&0xF])
		case 0xA1: // SKNP Vx
			m.skipIf(!m.keys[m.v[x]&0xF])
		default:
			m.unknownOpcodes++
		}

	case 0xF:
		m.misc(op)
	}
	return nil
}

func (m *Machine) call(address uint16) error {
	if m.sp == StackSize {
		return ErrStackOverflow
	}
	m.sp++
	m.stack[m.sp-1] = m.pc
	m.pc = address
	return nil
}

func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[m.sp-1]
	m.sp--
	return nil
}

// arithmetic executes the 8xyN register instructions. VF is written after the
// result so that VF as destination register holds the flag.
func (m *Machine) arithmetic(op Opcode) {
	x, y := op.X(), op.Y()
	vx, vy := m.v[x], m.v[y]

	switch op.N() {
	case 0x0: // LD Vx, Vy
		m.v[x] = vy
	case 0x1: // OR Vx, Vy
		m.v[x] = vx | vy
	case 0x2: // AND Vx, Vy
		m.v[x] = vx & vy
	case 0x3: // XOR Vx, Vy
		m.v[x] = vx ^ vy
	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		m.v[x] = uint8(sum)
		m.v[0xF] = boolToFlag(sum > 0xFF)
	case 0x5: // SUB Vx, Vy
		m.v[0xF] = boolToFlag(vx > vy)
		m.v[x] = vx - vy
	case 0x6: // SHR Vx
		m.v[0xF] = vx & 0x01
		m.v[x] = vx >> 1
	case 0x7: // SUBN Vx, Vy
		m.v[0xF] = boolToFlag(vy > vx)
		m.v[x] = vy - vx
	case 0xE: // SHL Vx
		m.v[0xF] = boolToFlag(vx&0x80 != 0)
		m.v[x] = vx << 1
	default:
		m.unknownOpcodes++
	}
}

// misc executes the Fxkk timer, keyboard and memory instructions.
func (m *Machine) misc(op Opcode) {
	x := op.X()

	switch op.KK() {
	case 0x07: // LD Vx, DT
		m.v[x] = m.timers.Delay
	case 0x0A: // LD Vx, K
		m.wait = keyWait{waiting: true, register: x}
	case 0x15: // LD DT, Vx
		m.timers.Delay = m.v[x]
	case 0x18: // LD ST, Vx
		m.timers.Sound = m.v[x]
	case 0x1E: // ADD I, Vx
		m.i += uint16(m.v[x])
	case 0x29: // LD F, Vx
		m.i = GlyphAddress(m.v[x])
	case 0x33: // LD B, Vx
		value := m.v[x]
		m.memory[m.i&addressMask] = value / 100
		m.memory[(m.i+1)&addressMask] = (value / 10) % 10
		m.memory[(m.i+2)&addressMask] = value % 10
	case 0x55: // LD [I], Vx
		for r := uint16(0); r <= uint16(x); r++ {
			m.memory[(m.i+r)&addressMask] = m.v[r]
		}
	case 0x65: // LD Vx, [I]
		for r := uint16(0); r <= uint16(x); r++ {
			m.v[r] = m.memory[(m.i+r)&addressMask]
		}
	default:
		m.unknownOpcodes++
	}
}

// draw XORs an n byte sprite read from memory at I onto the display at (vx, vy).
// The start position wraps around the display, the sprite itself is clipped at the
// display edges. VF is set if any set pixel was turned off.
func (m *Machine) draw(vx, vy, rows uint8) {
	m.v[0xF] = 0

	startX := int(vx) % Width
	startY := int(vy) % Height
	endX := min(startX+8, Width)
	endY := min(startY+int(rows), Height)

	for py := startY; py < endY; py++ {
		sprite := m.memory[(m.i+uint16(py-startY))&addressMask]
		for px := startX; px < endX; px++ {
			if sprite&(0x80>>(px-startX)) == 0 {
				continue
			}
			if m.display.flip(px, py) {
				m.v[0xF] = 1
			}
		}
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
