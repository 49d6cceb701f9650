// Package image defines c4go's binary executable container: a compiled
// program's code and data segments plus the entry point, serialized so the
// result can be written to disk and reloaded byte-for-byte (spec §4.G).
//
// The format is deliberately unversioned and host-endian, matching the
// "position-independent but not portable across machines" scope spec §9
// settles on: every address inside the image is already an offset (never a
// host pointer), so the only thing serialization has to get right is the
// three header ints and the two raw byte runs that follow them.
package image

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Image is a compiled program: code words, data bytes, and the word offset
// of main within Code.
type Image struct {
	MainOffset int32
	Code       []int32
	Data       []byte
}

// Save writes im to w as: main_offset, text_size (code segment size in
// bytes), data_size (byte count), then the raw code words, then the raw
// data bytes.
func Save(w io.Writer, im *Image) error {
	hdr := [3]int32{im.MainOffset, int32(len(im.Code)) * 4, int32(len(im.Data))}
	if err := binary.Write(w, binary.NativeEndian, hdr); err != nil {
		return errors.Wrap(err, "image: write header")
	}
	if err := binary.Write(w, binary.NativeEndian, im.Code); err != nil {
		return errors.Wrap(err, "image: write code")
	}
	if _, err := w.Write(im.Data); err != nil {
		return errors.Wrap(err, "image: write data")
	}
	return nil
}

// Load reads an Image previously written by Save.
func Load(r io.Reader) (*Image, error) {
	var hdr [3]int32
	if err := binary.Read(r, binary.NativeEndian, &hdr); err != nil {
		return nil, errors.Wrap(err, "image: read header")
	}
	mainOffset, textSize, dataSize := hdr[0], hdr[1], hdr[2]
	if textSize < 0 || dataSize < 0 || textSize%4 != 0 {
		return nil, errors.Errorf("image: corrupt header (text_size=%d data_size=%d)", textSize, dataSize)
	}

	code := make([]int32, textSize/4)
	if err := binary.Read(r, binary.NativeEndian, code); err != nil {
		return nil, errors.Wrap(err, "image: read code")
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "image: read data")
	}

	return &Image{MainOffset: mainOffset, Code: code, Data: data}, nil
}
