// Package crc8 implements the 8-bit CRC used by the FLAC frame header,
// polynomial x^8 + x^2 + x + 1 (0x07), initialized at zero, no reflection,
// no final XOR.
package crc8

// Table is a 256-entry lookup table for a CRC-8 polynomial.
type Table [256]uint8

// Poly is the polynomial FLAC frame headers are checksummed with.
const Poly = 0x07

// ATMTable is the precomputed table for Poly.
var ATMTable = makeTable(Poly)

func makeTable(poly uint8) *Table {
	var t Table
	for i := range t {
		crc := uint8(i)
		for j := 0; j < 8; j++ {
			if crc&0x80 != 0 {
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
func UpdateByte(crc uint8, table *Table, b byte) uint8 {
	return table[crc^b]
}

// Update folds every byte of p into crc using table.
func Update(crc uint8, table *Table, p []byte) uint8 {
	for _, b := range p {
		crc = table[crc^b]
	}
	return crc
}

// Checksum computes the CRC-8 of data from a zero initial value.
func Checksum(data []byte) uint8 {
	return Update(0, ATMTable, data)
}
