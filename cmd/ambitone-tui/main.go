// ambitone-tui is an interactive terminal front end for the synthesis
// engine: switch textures, retune the tone pair, and pause or stop a
// session without restarting the process.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ambitone/ambitone-go"
	"github.com/ambitone/ambitone-go/internal/pattern"
)

var modes = []ambitone.Mode{
	ambitone.ModeBinaural,
	ambitone.ModeIsochronic,
	ambitone.ModeLayered,
	ambitone.ModePink,
	ambitone.ModeBrown,
	ambitone.ModeBowl,
	ambitone.ModeDrone,
	ambitone.ModeDrums,
}

type app struct {
	screen tcell.Screen
	gen    *ambitone.Generator

	modeIdx int
	carrier float64
	beat    float64
	volume  float64
	bpm     float64
	status  string
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))

	a := &app{
		screen:  screen,
		gen:     ambitone.NewGenerator(ambitone.WithFadeDuration(time.Second)),
		carrier: 200,
		beat:    8,
		volume:  1,
		bpm:     120,
		status:  "stopped",
	}
	defer a.gen.ForceStop()
	a.run()
}

func (a *app) run() {
	a.draw()
	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if !a.handleKey(ev) {
				return
			}
		}
		a.draw()
	}
}

// handleKey returns false when the app should exit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.retune(0, -1)
		return true
	case tcell.KeyRight:
		a.retune(0, 1)
		return true
	case tcell.KeyUp:
		a.retune(10, 0)
		return true
	case tcell.KeyDown:
		a.retune(-10, 0)
		return true
	}
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case '1', '2', '3', '4', '5', '6', '7', '8':
		a.modeIdx = int(r - '1')
		a.start()
	case ' ':
		a.togglePause()
	case 's':
		a.stop()
	case '+', '=':
		a.setVolume(a.volume + 0.1)
	case '-':
		a.setVolume(a.volume - 0.1)
	case '[':
		a.bpm -= 5
		if a.bpm < 40 {
			a.bpm = 40
		}
		a.restartDrums()
	case ']':
		a.bpm += 5
		a.restartDrums()
	}
	return true
}

func (a *app) config() ambitone.Config {
	cfg := ambitone.Config{
		Mode:      modes[a.modeIdx],
		FreqLeft:  a.carrier,
		FreqRight: a.carrier + a.beat,
	}
	if cfg.Mode == ambitone.ModeDrums {
		cfg.Pattern = pattern.FourOnFloor(a.bpm)
	}
	return cfg
}

func (a *app) start() {
	if err := a.gen.Start(a.config()); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.gen.SetVolume(a.volume)
	a.status = "playing"
}

func (a *app) stop() {
	if !a.gen.IsPlaying() {
		return
	}
	a.gen.Stop(nil)
	a.status = "fading out"
}

func (a *app) togglePause() {
	if a.gen.IsPlaying() {
		a.gen.Pause()
		a.status = "paused"
		return
	}
	if err := a.gen.Resume(); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = "playing"
}

func (a *app) retune(carrierDelta, beatDelta float64) {
	a.carrier += carrierDelta
	if a.carrier < 20 {
		a.carrier = 20
	}
	a.beat += beatDelta
	if a.beat < 0.5 {
		a.beat = 0.5
	}
	a.gen.UpdateFrequencies(a.carrier, a.carrier+a.beat)
}

func (a *app) setVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 2 {
		v = 2
	}
	a.volume = v
	a.gen.SetVolume(v)
}

// restartDrums rebuilds the session when the tempo changes, since
// trigger offsets are baked at start.
func (a *app) restartDrums() {
	if modes[a.modeIdx] == ambitone.ModeDrums && a.gen.IsPlaying() {
		a.start()
	}
}

func (a *app) draw() {
	a.screen.Clear()
	bold := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault

	a.print(0, 0, bold, "ambitone")
	for i, m := range modes {
		style := plain
		if i == a.modeIdx {
			style = bold
		}
		a.print(2, 2+i, style, fmt.Sprintf("%d  %s", i+1, m))
	}

	y := 2 + len(modes) + 1
	a.print(0, y, plain, fmt.Sprintf("carrier %6.1f Hz   beat %5.1f Hz   volume %3.0f%%   bpm %3.0f",
		a.carrier, a.beat, a.volume*100, a.bpm))
	a.print(0, y+1, plain, "status: "+a.status)
	a.print(0, y+3, plain, "1-8 texture   space pause   s stop   arrows retune   +/- volume   [/] bpm   q quit")
	a.screen.Show()
}

func (a *app) print(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}
