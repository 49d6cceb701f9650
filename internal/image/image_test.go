package image_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/c4go/internal/image"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	im := &image.Image{
		MainOffset: 3,
		Code:       []int32{0, int32(1), 2, 3},
		Data:       []byte{1, 2, 3, 4, 5},
	}

	var buf bytes.Buffer
	require.NoError(t, image.Save(&buf, im))

	got, err := image.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, im.MainOffset, got.MainOffset)
	assert.Equal(t, im.Code, got.Code)
	assert.Equal(t, im.Data, got.Data)
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	_, err := image.Load(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestLoadRejectsNegativeSizes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, image.Save(&buf, &image.Image{MainOffset: 0}))
	raw := buf.Bytes()
	// Corrupt the code-size field (second int32) to -1.
	raw[4], raw[5], raw[6], raw[7] = 0xff, 0xff, 0xff, 0xff
	_, err := image.Load(bytes.NewReader(raw))
	require.Error(t, err)
}
