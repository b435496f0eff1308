// Package utils provides the leaf-level byte, buffer and bounds-checking
// helpers shared by the encoder and decoder.
package utils

import "unsafe"

// hostLittleEndian is probed once at package init by writing a known 16-bit
// word and inspecting its first byte, per the component's contract: "host
// endianness is determined at runtime by probing a local word."
var hostLittleEndian = func() bool {
	var probe uint16 = 0x0001
	b := (*[2]byte)(unsafe.Pointer(&probe))
	return b[0] == 0x01
}()

// SwapFloat32Bytes byte-reverses a 4-byte field in place iff the host is
// little-endian. Integer fields never need this: they are always assembled
// with explicit byte shifts and are endianness-independent.
func SwapFloat32Bytes(b []byte) {
	if !hostLittleEndian || len(b) != 4 {
		return
	}
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
}

// SwapFloat64Bytes byte-reverses an 8-byte field in place iff the host is
// little-endian.
func SwapFloat64Bytes(b []byte) {
	if !hostLittleEndian || len(b) != 8 {
		return
	}
	b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7] =
		b[7], b[6], b[5], b[4], b[3], b[2], b[1], b[0]
}

// PutNativeFloat32 writes f into b (len(b) == 4) in the host's native byte
// layout, mirroring how the reference C implementation memcpy's a float into
// a header buffer before the endian helper normalizes it to wire order.
func PutNativeFloat32(b []byte, f float32) {
	*(*float32)(unsafe.Pointer(&b[0])) = f
}

// NativeFloat32 reads b (len(b) == 4), interpreted in the host's native byte
// layout, back into a float32.
func NativeFloat32(b []byte) float32 {
	return *(*float32)(unsafe.Pointer(&b[0]))
}

// PutNativeFloat64 writes f into b (len(b) == 8) in the host's native byte
// layout.
func PutNativeFloat64(b []byte, f float64) {
	*(*float64)(unsafe.Pointer(&b[0])) = f
}

// NativeFloat64 reads b (len(b) == 8), interpreted in the host's native byte
// layout, back into a float64.
func NativeFloat64(b []byte) float64 {
	return *(*float64)(unsafe.Pointer(&b[0]))
}

// Float32RoundTrips reports whether f survives a float64->float32->float64
// round trip exactly, the test the encoder uses to pick the shorter float32
// wire representation over float64.
func Float32RoundTrips(f float64) bool {
	return float64(float32(f)) == f
}
