// Package wire holds the MessagePack header byte constants shared by the
// encoder and decoder, so the two stay in lockstep on the wire format.
package wire

// Fixed single-byte headers.
const (
	Nil        byte = 0xC0
	False      byte = 0xC2
	True       byte = 0xC3
	Float32    byte = 0xCA
	Float64    byte = 0xCB
	Uint8      byte = 0xCC
	Uint16     byte = 0xCD
	Uint32     byte = 0xCE
	Uint64     byte = 0xCF
	Int8       byte = 0xD0
	Int16      byte = 0xD1
	Int32      byte = 0xD2
	Int64      byte = 0xD3
	Bin8       byte = 0xC4
	Bin16      byte = 0xC5
	Bin32      byte = 0xC6
	Ext8       byte = 0xC7
	Ext16      byte = 0xC8
	Ext32      byte = 0xC9
	Str8       byte = 0xD9
	Str16      byte = 0xDA
	Str32      byte = 0xDB
	Array16    byte = 0xDC
	Array32    byte = 0xDD
	Map16      byte = 0xDE
	Map32      byte = 0xDF
	FixExt1    byte = 0xD4
	FixExt2    byte = 0xD5
	FixExt4    byte = 0xD6
	FixExt8    byte = 0xD7
	FixExt16   byte = 0xD8
	FixMapLow  byte = 0x80
	FixMapHigh byte = 0x8F
	FixArrLow  byte = 0x90
	FixArrHigh byte = 0x9F
	FixStrLow  byte = 0xA0
	FixStrHigh byte = 0xBF
	PosFixMax  byte = 0x7F
	NegFixMin  byte = 0xE0
)
