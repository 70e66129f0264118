package main

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const playChannels = 2

// player feeds a session to the audio device. Read runs on oto's goroutine
// and renders blocks on demand.
type player struct {
	ctx     *oto.Context
	player  *oto.Player
	session *session

	mu      sync.Mutex
	pending []byte
	buf     []byte
}

func newPlayer(sampleRate int, s *session) (*player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: playChannels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &player{
		ctx:     ctx,
		session: s,
		buf:     make([]byte, 0, 4*playChannels*len(s.frames)),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read implements io.Reader for oto.
func (p *player) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for n < len(b) {
		if len(p.pending) == 0 {
			p.pending = p.renderBlock()
		}
		c := copy(b[n:], p.pending)
		p.pending = p.pending[c:]
		n += c
	}
	return n, nil
}

func (p *player) renderBlock() []byte {
	buf := p.buf[:0]
	for _, f := range p.session.next() {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(f.Out)/32768))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(f.Aux)/32768))
	}
	p.buf = buf
	return buf
}

// Play starts playback and returns after seconds or when ctx is done.
func (p *player) Play(ctx context.Context, seconds float64) error {
	p.player.Play()
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
	p.player.Pause()
	return nil
}

// Close releases the player.
func (p *player) Close() error {
	return p.player.Close()
}
