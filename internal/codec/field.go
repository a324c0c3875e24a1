package codec

import "encoding/binary"

// fieldReader walks a fixed big-endian buffer field by field, in the
// style of the teacher's packet.Reader — except every multi-byte field
// here is big-endian per the Generation-II wire format (spec §3), not
// the little-endian L1J client protocol.
type fieldReader struct {
	data []byte
	off  int
}

func newFieldReader(data []byte) *fieldReader {
	return &fieldReader{data: data}
}

func (r *fieldReader) byte() byte {
	v := r.data[r.off]
	r.off++
	return v
}

func (r *fieldReader) bytes(n int) []byte {
	v := r.data[r.off : r.off+n]
	r.off += n
	return v
}

func (r *fieldReader) u16() uint16 {
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *fieldReader) u24() uint32 {
	b := r.data[r.off : r.off+3]
	r.off += 3
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// fieldWriter is the write-side counterpart of fieldReader.
type fieldWriter struct {
	data []byte
	off  int
}

func newFieldWriter(data []byte) *fieldWriter {
	return &fieldWriter{data: data}
}

func (w *fieldWriter) byte(v byte) {
	w.data[w.off] = v
	w.off++
}

func (w *fieldWriter) bytes(v []byte) {
	copy(w.data[w.off:], v)
	w.off += len(v)
}

func (w *fieldWriter) u16(v uint16) {
	binary.BigEndian.PutUint16(w.data[w.off:], v)
	w.off += 2
}

func (w *fieldWriter) u24(v uint32) {
	w.data[w.off] = byte(v >> 16)
	w.data[w.off+1] = byte(v >> 8)
	w.data[w.off+2] = byte(v)
	w.off += 3
}
