// Package crc16 implements the 16-bit CRC used by the FLAC frame footer,
// polynomial x^16 + x^15 + x^2 + x^0 (0x8005), initialized at zero, no
// reflection, no final XOR.
package crc16

// Table is a 256-entry lookup table for a CRC-16 polynomial.
type Table [256]uint16

// Poly is the polynomial FLAC frames are checksummed with.
const Poly = 0x8005

// IBMTable is the precomputed table for Poly.
var IBMTable = makeTable(Poly)

func makeTable(poly uint16) *Table {
	var t Table
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// UpdateByte folds one byte into crc using table.
func UpdateByte(crc uint16, table *Table, b byte) uint16 {
	return crc<<8 ^ table[crc>>8^uint16(b)]
}

// Update folds every byte of p into crc using table.
func Update(crc uint16, table *Table, p []byte) uint16 {
	for _, b := range p {
		crc = UpdateByte(crc, table, b)
	}
	return crc
}

// Checksum computes the CRC-16 of data from a zero initial value.
func Checksum(data []byte) uint16 {
	return Update(0, IBMTable, data)
}
