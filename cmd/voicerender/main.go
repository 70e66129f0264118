// Command voicerender renders a voice patch to a WAV file and prints an
// analysis of the result.
//
// Usage:
//
//	voicerender [flags]
//
// The WAV file is stereo: the main output on the left, the auxiliary output
// on the right. With -play the patch is rendered live instead and played
// until -seconds have passed or the process is interrupted; -userdata then
// also watches the directory and reloads changed slot files.
//
// Examples:
//
//	voicerender -engine fm -note 60 -o fm.wav
//	voicerender -engine string -trigger 0.5 -seconds 4 -o pluck.wav
//	voicerender -engine wavetable -userdata ./tables -play
//	voicerender -insert fold -insert-freq 110 -insert-timbre 0.7
//	voicerender -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-macrosynth/dsp/effects/modulation"
	"github.com/cwbudde/algo-macrosynth/dsp/engines"
	"github.com/cwbudde/algo-macrosynth/dsp/userdata"
	"github.com/cwbudde/algo-macrosynth/dsp/voice"
	"github.com/cwbudde/algo-macrosynth/measure/spectral"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("voicerender: ")

	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if cfg.list {
		printList()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("error: %v", err)
	}
}

type config struct {
	engine     string
	patch      voice.Patch
	level      float64
	trigger    float64
	seconds    float64
	sampleRate float64
	blockSize  int

	insert       string
	insertFreq   float64
	insertGain   float64
	insertLevel  float64
	insertTimbre float64

	output   string
	userData string
	play     bool
	list     bool
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config
	p := voice.DefaultPatch()

	fs.StringVar(&cfg.engine, "engine", engines.Names[0], "engine name (see -list)")
	fs.Float64Var(&p.Note, "note", p.Note, "pitch in semitones, MIDI numbering")
	fs.Float64Var(&p.Harmonics, "harmonics", p.Harmonics, "harmonics macro [0, 1]")
	fs.Float64Var(&p.Timbre, "timbre", p.Timbre, "timbre macro [0, 1]")
	fs.Float64Var(&p.Morph, "morph", p.Morph, "morph macro [0, 1]")
	fs.Float64Var(&p.Decay, "decay", p.Decay, "envelope decay [0, 1]")
	fs.Float64Var(&p.LPGColour, "colour", p.LPGColour, "low-pass gate colour [0, 1]")
	fs.Float64Var(&p.TimbreModulationAmount, "timbre-env", 0, "decay envelope depth on timbre [-1, 1]")
	fs.Float64Var(&p.FrequencyModulationAmount, "pitch-env", 0, "decay envelope depth on pitch [-1, 1]")
	fs.Float64Var(&cfg.level, "level", -1, "gate level [0, 1]; negative leaves level unpatched")
	fs.Float64Var(&cfg.trigger, "trigger", 0, "trigger period in seconds; 0 leaves the trigger unpatched")
	fs.Float64Var(&cfg.seconds, "seconds", 2, "duration to render")
	fs.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&cfg.blockSize, "block", 24, "block size in frames")
	fs.StringVar(&cfg.insert, "insert", "off", "insert mode (see -list)")
	fs.Float64Var(&cfg.insertFreq, "insert-freq", 220, "frequency of the sine fed to the insert, in Hz")
	fs.Float64Var(&cfg.insertGain, "insert-gain", 1, "insert input gain [1, 10]")
	fs.Float64Var(&cfg.insertLevel, "insert-level", 1, "insert modulator level [0, 1]")
	fs.Float64Var(&cfg.insertTimbre, "insert-timbre", 0.5, "insert amount [0, 1]")
	fs.StringVar(&cfg.output, "o", "voice.wav", "output WAV file; empty skips writing")
	fs.StringVar(&cfg.userData, "userdata", "", "directory of slot-NN.bin user data files")
	fs.BoolVar(&cfg.play, "play", false, "play live instead of writing a file")
	fs.BoolVar(&cfg.list, "list", false, "list engine and insert mode names")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: voicerender [flags]\n\n")
		fmt.Fprintf(out, "Renders a voice patch to WAV and prints level and spectrum figures.\n\n")
		fmt.Fprintf(out, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  voicerender -engine fm -note 60 -o fm.wav\n")
		fmt.Fprintf(out, "  voicerender -engine string -trigger 0.5 -seconds 4\n")
		fmt.Fprintf(out, "  voicerender -engine wavetable -userdata ./tables -play\n")
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	index, err := engines.Index(cfg.engine)
	if err != nil {
		return config{}, err
	}
	p.Engine = index
	cfg.patch = p

	if _, err := modulation.ParseMode(cfg.insert); err != nil {
		return config{}, err
	}
	if cfg.seconds <= 0 {
		return config{}, fmt.Errorf("seconds must be > 0: %g", cfg.seconds)
	}
	if cfg.trigger < 0 {
		return config{}, fmt.Errorf("trigger period must be >= 0: %g", cfg.trigger)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config) error {
	var provider userdata.Provider
	var dir *userdata.Dir
	if cfg.userData != "" {
		var err error
		if dir, err = userdata.OpenDir(cfg.userData); err != nil {
			return err
		}
		provider = dir
	}

	s, err := newSession(cfg, provider)
	if err != nil {
		return err
	}

	if cfg.play {
		return play(ctx, cfg, s, dir)
	}

	pcm := s.renderAll(cfg.seconds)
	if cfg.output != "" {
		if err := writeFile(cfg.output, int(cfg.sampleRate), pcm); err != nil {
			return err
		}
		log.Printf("wrote %s", cfg.output)
	}
	return report(os.Stdout, pcm, cfg.sampleRate)
}

// play streams the session live. The watcher, when present, runs next to
// the player and requests a reload on every slot change.
func play(ctx context.Context, cfg config, s *session, dir *userdata.Dir) error {
	p, err := newPlayer(int(cfg.sampleRate), s)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return p.Play(ctx, cfg.seconds)
	})
	if dir != nil {
		g.Go(func() error {
			return dir.Watch(ctx, func() {
				log.Printf("user data changed in %s, reloading", dir.Path())
				s.voice.RequestReload()
			})
		})
	}
	return g.Wait()
}

func report(w io.Writer, pcm []int16, sampleRate float64) error {
	a, err := spectral.NewAnalyzer(sampleRate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "channel\tpeak dB\trms dB\tdc\tclipped\tpeak Hz\tcentroid Hz\tflatness\trolloff Hz\t")
	for ch, name := range []string{"out", "aux"} {
		r, err := a.Analyze(spectral.FromPCM(pcm[ch:], 2))
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.4f\t%d\t%.1f\t%.1f\t%.3f\t%.1f\t\n",
			name, r.Peak_dB, r.RMS_dB, r.DC, r.Clipped, r.PeakFrequency, r.Centroid, r.Flatness, r.Rolloff)
	}
	return tw.Flush()
}

func printList() {
	fmt.Println("engines:")
	for i, name := range engines.Names {
		fmt.Printf("  %2d  %s\n", i, name)
	}
	names := make([]string, modulation.NumModes)
	for i := range names {
		names[i] = modulation.Mode(i).String()
	}
	fmt.Printf("insert modes:\n  %s\n", strings.Join(names, ", "))
}
