package main

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/effects/modulation"
	"github.com/cwbudde/algo-macrosynth/dsp/userdata"
	"github.com/cwbudde/algo-macrosynth/dsp/voice"
)

// Stage of the insert the CLI drives; the second stage offers every mode.
const insertStage = 1

// session renders a patch block by block, generating the trigger and the
// insert's sine input on the fly.
type session struct {
	voice  *voice.Voice
	patch  voice.Patch
	mods   voice.Modulations
	frames []voice.Frame

	modulator     []float64
	modulatorStep float64
	phase         float64

	triggerBlocks int
	block         int
}

func newSession(cfg config, provider userdata.Provider) (*session, error) {
	v, err := voice.New(nil,
		voice.WithSampleRate(cfg.sampleRate),
		voice.WithBlockSize(cfg.blockSize),
		voice.WithUserData(provider),
	)
	if err != nil {
		return nil, err
	}

	mode, err := modulation.ParseMode(cfg.insert)
	if err != nil {
		return nil, err
	}

	s := &session{
		voice:         v,
		patch:         cfg.patch,
		frames:        make([]voice.Frame, cfg.blockSize),
		modulator:     make([]float64, cfg.blockSize),
		modulatorStep: cfg.insertFreq / cfg.sampleRate,
	}

	if cfg.level >= 0 {
		s.mods.LevelPatched = true
		s.mods.Level = cfg.level
	}
	if cfg.trigger > 0 {
		s.mods.TriggerPatched = true
		s.triggerBlocks = max(2, int(math.Round(cfg.trigger*cfg.sampleRate/float64(cfg.blockSize))))
	}
	if mode != modulation.ModeOff {
		s.mods.Insert[insertStage] = modulation.StageParams{
			Input:  s.modulator,
			Mode:   mode,
			Gain:   cfg.insertGain,
			Level:  cfg.insertLevel,
			Timbre: cfg.insertTimbre,
		}
	}
	return s, nil
}

// next renders one block and returns its frames. The slice is reused by
// the following call.
func (s *session) next() []voice.Frame {
	if s.triggerBlocks > 0 {
		// High for the first half of each period.
		s.mods.Trigger = 0
		if s.block%s.triggerBlocks < s.triggerBlocks/2 {
			s.mods.Trigger = 1
		}
	}
	for i := range s.modulator {
		s.modulator[i] = math.Sin(2 * math.Pi * s.phase)
		s.phase += s.modulatorStep
		s.phase -= math.Floor(s.phase)
	}

	s.voice.Render(&s.patch, &s.mods, s.frames)
	s.block++
	return s.frames
}

// renderAll renders seconds of audio as interleaved out/aux samples.
func (s *session) renderAll(seconds float64) []int16 {
	total := int(math.Ceil(seconds * s.voice.SampleRate()))
	pcm := make([]int16, 0, 2*total)
	for len(pcm) < 2*total {
		for _, f := range s.next() {
			if len(pcm) == 2*total {
				break
			}
			pcm = append(pcm, f.Out, f.Aux)
		}
	}
	return pcm
}
