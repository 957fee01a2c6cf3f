package gemini

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVContentType is the media type of narrated audio.
const WAVContentType = "audio/wav"

// DefaultSampleRate is the PCM rate of Gemini speech output.
const DefaultSampleRate = 24000

const (
	wavChannels      = 1
	wavBitsPerSample = 16
	wavFormatPCM     = 1
)

// EncodeWAV wraps mono 16-bit little-endian PCM samples in a WAVE container.
// A trailing odd byte is dropped.
func EncodeWAV(pcm []byte, rate int) ([]byte, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	out := &seekBuffer{}
	enc := wav.NewEncoder(out, rate, wavBitsPerSample, wavChannels, wavFormatPCM)
	err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: wavBitsPerSample,
	})
	if err != nil {
		return nil, fmt.Errorf("encode wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finish wav header: %w", err)
	}
	return out.buf, nil
}

// sampleRate reads the rate parameter of an audio/L16 media type.
func sampleRate(mimeType string) int {
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return DefaultSampleRate
	}
	if rate, err := strconv.Atoi(params["rate"]); err == nil && rate > 0 {
		return rate
	}
	return DefaultSampleRate
}

// seekBuffer is an in-memory io.WriteSeeker; the encoder seeks back to
// patch chunk sizes once the samples are written.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = b.pos
	case io.SeekEnd:
		base = len(b.buf)
	default:
		return 0, errors.New("seek: invalid whence")
	}
	next := base + int(offset)
	if next < 0 {
		return 0, errors.New("seek: negative position")
	}
	b.pos = next
	return int64(next), nil
}
