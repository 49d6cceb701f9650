package arena

// Data is the append-only data segment: globals (4 bytes each, regardless
// of declared type) and string-literal bytes, appended in the order the
// compiler meets them, with the head aligned to a 4-byte boundary after
// each literal (spec §3 "Data segment").
type Data struct {
	Bytes []byte
}

// NewData returns an empty data arena.
func NewData() *Data { return &Data{} }

// Head returns the current write offset (== len(Bytes)).
func (d *Data) Head() int32 { return int32(len(d.Bytes)) }

// AppendByte appends a single byte and returns the offset it landed at.
func (d *Data) AppendByte(b byte) int32 {
	off := d.Head()
	d.Bytes = append(d.Bytes, b)
	return off
}

// AlignTo4 pads the data segment with zero bytes until its head is a
// multiple of 4. Spec §8 (testable property 3) requires this after every
// string literal.
func (d *Data) AlignTo4() {
	for d.Head()%4 != 0 {
		d.Bytes = append(d.Bytes, 0)
	}
}

// ReserveGlobal allocates one 4-byte, zero-initialized global cell and
// returns its offset. Every global consumes 4 bytes regardless of its
// declared type (spec §3, §9 open question on char globals).
func (d *Data) ReserveGlobal() int32 {
	off := d.Head()
	d.Bytes = append(d.Bytes, 0, 0, 0, 0)
	return off
}

// CString returns the NUL-or-end-of-segment terminated byte slice starting
// at off, not including any terminator.
func (d *Data) CString(off int32) []byte {
	i := int(off)
	j := i
	for j < len(d.Bytes) && d.Bytes[j] != 0 {
		j++
	}
	return d.Bytes[i:j]
}
