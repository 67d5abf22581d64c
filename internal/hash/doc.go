// Package hash provides the CRC32-Castagnoli checksum used to protect
// exported prime sets.
//
//	h := hash.NewCRC32C()
//	h.Write(header[:32])
//	h.Write(body)
//	checksum := h.Sum32()
//
// Go's hash/crc32 uses hardware instructions for the Castagnoli polynomial
// on x86-64 (SSE4.2) and arm64.
package hash
