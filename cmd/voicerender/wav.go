package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	wavChannels      = 2
	wavBitsPerSample = 16
)

type wavHeader struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// writeWAV writes interleaved stereo 16-bit PCM.
func writeWAV(w io.Writer, sampleRate int, pcm []int16) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: sample rate must be > 0: %d", sampleRate)
	}
	if len(pcm)%wavChannels != 0 {
		return fmt.Errorf("wav: %d samples do not fill whole frames", len(pcm))
	}

	dataSize := uint32(2 * len(pcm))
	blockAlign := uint16(wavChannels * wavBitsPerSample / 8)
	h := wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   wavChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: wavBitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("wav: header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("wav: data: %w", err)
	}
	return nil
}

func writeFile(path string, sampleRate int, pcm []int16) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeWAV(w, sampleRate, pcm); err != nil {
		return err
	}
	return w.Flush()
}
