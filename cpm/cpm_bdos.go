// This file implements the BDOS function-calls we support.
//
// These are documented online:
//
// * https://www.seasip.info/Cpm/bdos.html

package cpm

// BdosSysCallExit implements the Exit syscall
func BdosSysCallExit(cpm *CPM) error {
	return ErrExit
}

// BdosSysCallWriteChar writes the single character in the E register to
// the console.
func BdosSysCallWriteChar(cpm *CPM) error {
	cpm.output.PutCharacter(cpm.CPU.States.DE.Lo)
	return nil
}

// BdosSysCallPrinterWrite should send a single character to the printer,
// we fake that by writing to a file instead.
func BdosSysCallPrinterWrite(cpm *CPM) error {
	return cpm.prnC(cpm.CPU.States.DE.Lo)
}

// BdosSysCallRawIO handles direct console I/O.
//
// A value of 0xFF in E is a request for input, and 0xFE a request for the
// input status.  We have no console input, so both report nothing is
// pending.  Any other value is written to the console.
func BdosSysCallRawIO(cpm *CPM) error {

	switch c := cpm.CPU.States.DE.Lo; c {
	case 0xFF, 0xFE:
		cpm.CPU.States.AF.Hi = 0x00
	default:
		cpm.output.PutCharacter(c)
	}
	return nil
}

// BdosSysCallWriteString writes the $-terminated string pointed to by DE
// to the console.
func BdosSysCallWriteString(cpm *CPM) error {
	addr := cpm.CPU.States.DE.U16()

	for _, c := range []uint8(cpm.Memory.GetString(addr, '$')) {
		cpm.output.PutCharacter(c)
	}

	// Return values:
	// HL = 0, B=0, A=0
	cpm.CPU.States.HL.SetU16(0x0000)
	cpm.CPU.States.BC.Hi = 0x00
	cpm.CPU.States.AF.Hi = 0x00

	return nil
}

// BdosSysCallBDOSVersion returns version details
func BdosSysCallBDOSVersion(cpm *CPM) error {

	// HL = 0x0022 -CP/M 2.2
	// B = 0x00
	// A = 0x22
	cpm.CPU.States.AF.Hi = 0x22
	cpm.CPU.States.AF.Lo = 0x00
	cpm.CPU.States.HL.Hi = 0x00
	cpm.CPU.States.HL.Lo = 0x22
	cpm.CPU.States.BC.Hi = 0x00

	return nil
}
