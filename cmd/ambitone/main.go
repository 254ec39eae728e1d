package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ambitone/ambitone-go"
	"github.com/ambitone/ambitone-go/internal/pattern"
)

func main() {
	var (
		modeName    = flag.String("mode", "binaural", "texture: binaural|isochronic|layered|pink|brown|bowl|drone|drums")
		left        = flag.Float64("left", 200, "left-ear frequency in Hz (isochronic: carrier)")
		right       = flag.Float64("right", 208, "right-ear frequency in Hz (isochronic: carrier + pulse rate)")
		sampleRate  = flag.Int("sample-rate", ambitone.DefaultSampleRate, "preferred output sample rate")
		volume      = flag.Float64("volume", 1.0, "master volume scalar")
		fade        = flag.Duration("fade", 2*time.Second, "fade-in/out duration")
		duration    = flag.Duration("duration", 0, "stop after this long (0 = play until interrupted)")
		patternPath = flag.String("pattern", "", "drum pattern file for -mode drums (default: built-in four-on-the-floor)")
		bpm         = flag.Float64("bpm", 120, "tempo for the built-in drum pattern")
		wavPath     = flag.String("wav", "", "render offline to a WAV file instead of playing")
		wavSeconds  = flag.Float64("seconds", 30, "length of the offline render")
		release     = flag.Bool("release-on-pause", false, "free the audio device while paused")
	)
	flag.Parse()

	cfg, err := buildConfig(*modeName, *left, *right, *sampleRate, *patternPath, *bpm)
	if err != nil {
		log.Fatal(err)
	}

	if *wavPath != "" {
		samples, err := ambitone.RenderSamples(cfg, *sampleRate, *wavSeconds)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*wavPath, ambitone.EncodeWAVFloat32LE(samples, *sampleRate, 2), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%.1fs at %d Hz)\n", *wavPath, *wavSeconds, *sampleRate)
		return
	}

	opts := []ambitone.GeneratorOption{ambitone.WithFadeDuration(*fade)}
	if *release {
		opts = append(opts, ambitone.WithPauseStrategy(ambitone.PauseRelease))
	}
	gen := ambitone.NewGenerator(opts...)
	gen.SetVolume(*volume)
	if err := gen.Start(cfg); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("playing %s (ctrl-c to stop)\n", cfg.Mode)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	if *duration > 0 {
		select {
		case <-time.After(*duration):
		case <-sig:
		}
	} else {
		<-sig
	}

	done := make(chan struct{})
	gen.Stop(func() { close(done) })
	select {
	case <-done:
	case <-sig: // second interrupt skips the fade
		gen.ForceStop()
	}
}

func buildConfig(modeName string, left, right float64, sampleRate int, patternPath string, bpm float64) (ambitone.Config, error) {
	cfg := ambitone.Config{
		FreqLeft:   left,
		FreqRight:  right,
		SampleRate: sampleRate,
	}
	switch strings.ToLower(strings.TrimSpace(modeName)) {
	case "binaural":
		cfg.Mode = ambitone.ModeBinaural
	case "isochronic":
		cfg.Mode = ambitone.ModeIsochronic
	case "layered":
		cfg.Mode = ambitone.ModeLayered
	case "pink":
		cfg.Mode = ambitone.ModePink
	case "brown":
		cfg.Mode = ambitone.ModeBrown
	case "bowl":
		cfg.Mode = ambitone.ModeBowl
	case "drone":
		cfg.Mode = ambitone.ModeDrone
	case "drums":
		cfg.Mode = ambitone.ModeDrums
		pat, err := resolvePattern(patternPath, bpm)
		if err != nil {
			return cfg, err
		}
		cfg.Pattern = pat
	default:
		return cfg, fmt.Errorf("invalid -mode %q", modeName)
	}
	return cfg, nil
}

func resolvePattern(path string, bpm float64) (*pattern.Pattern, error) {
	if strings.TrimSpace(path) == "" {
		return pattern.FourOnFloor(bpm), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pattern.NewParser(pattern.DefaultParserConfig()).Parse(string(data))
}
