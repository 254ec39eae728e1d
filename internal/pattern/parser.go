package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// ParserConfig tunes the velocities the grid notation maps to.
type ParserConfig struct {
	DefaultVelocity float64
	AccentVelocity  float64
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		DefaultVelocity: 0.8,
		AccentVelocity:  1.0,
	}
}

// Parser reads the step-grid notation:
//
//	bpm 130
//	beats 16
//	k: x... x... x... x...
//	s: .... x... .... x...
//	h: x.o. x.o. x.o. x.o.
//
// Row tags are k/s/h/c (kick, snare, hat, crash). Step marks: '.' rest,
// 'x' hit, 'X' accent, 'o'/'O' open hat. Spaces inside a row are cosmetic.
// Each row's step count divides the loop evenly, so rows may use different
// resolutions.
type Parser struct {
	cfg ParserConfig
}

func NewParser(cfg ParserConfig) *Parser {
	return &Parser{cfg: cfg}
}

var rowInstruments = map[string]Instrument{
	"k": Kick,
	"s": Snare,
	"h": Hat,
	"c": Crash,
}

func (p *Parser) Parse(text string) (*Pattern, error) {
	pat := &Pattern{}
	for ln, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "bpm "):
			v, err := strconv.ParseFloat(strings.TrimSpace(line[4:]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad bpm: %v", ln+1, err)
			}
			pat.BPM = v
		case strings.HasPrefix(line, "beats "):
			v, err := strconv.ParseFloat(strings.TrimSpace(line[6:]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad beats: %v", ln+1, err)
			}
			pat.LoopBeats = v
		default:
			if err := p.parseRow(pat, ln+1, line); err != nil {
				return nil, err
			}
		}
	}
	if err := pat.Validate(); err != nil {
		return nil, err
	}
	return pat, nil
}

func (p *Parser) parseRow(pat *Pattern, ln int, line string) error {
	tag, steps, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("line %d: expected \"tag: steps\"", ln)
	}
	instr, ok := rowInstruments[strings.TrimSpace(tag)]
	if !ok {
		return fmt.Errorf("line %d: unknown instrument tag %q", ln, strings.TrimSpace(tag))
	}
	if pat.LoopBeats <= 0 {
		return fmt.Errorf("line %d: beats must be declared before rows", ln)
	}
	steps = strings.ReplaceAll(steps, " ", "")
	if steps == "" {
		return fmt.Errorf("line %d: empty step row", ln)
	}
	beatsPerStep := pat.LoopBeats / float64(len(steps))
	for i, mark := range steps {
		var vel float64
		var open bool
		switch mark {
		case '.':
			continue
		case 'x':
			vel = p.cfg.DefaultVelocity
		case 'X':
			vel = p.cfg.AccentVelocity
		case 'o':
			vel, open = p.cfg.DefaultVelocity, true
		case 'O':
			vel, open = p.cfg.AccentVelocity, true
		default:
			return fmt.Errorf("line %d: bad step mark %q at column %d", ln, mark, i)
		}
		pat.Triggers = append(pat.Triggers, Trigger{
			Beat:       float64(i) * beatsPerStep,
			Instrument: instr,
			Velocity:   vel,
			Open:       open,
		})
	}
	return nil
}
