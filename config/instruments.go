package config

import (
	"fmt"
	"os"

	"github.com/nikolaydubina/fpdecimal"
	"gopkg.in/yaml.v3"
)

// Instrument describes one tradable instrument. Tick and Lot scale
// the engine's integer prices and sizes to decimal units on the
// public feed.
type Instrument struct {
	Symbol string
	Tick   fpdecimal.Decimal
	Lot    fpdecimal.Decimal
}

type instrumentsFile struct {
	Instruments []struct {
		Symbol string `yaml:"symbol"`
		Tick   string `yaml:"tick"`
		Lot    string `yaml:"lot"`
	} `yaml:"instruments"`
}

// LoadInstruments reads the instruments file. Symbols must be unique
// and tick and lot must parse as decimals.
func LoadInstruments(path string) ([]Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instruments file: %w", err)
	}
	return ParseInstruments(data)
}

// ParseInstruments decodes the YAML instruments listing
func ParseInstruments(data []byte) ([]Instrument, error) {
	var file instrumentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse instruments file: %w", err)
	}
	if len(file.Instruments) == 0 {
		return nil, fmt.Errorf("instruments file lists no instruments")
	}

	seen := make(map[string]bool, len(file.Instruments))
	instruments := make([]Instrument, 0, len(file.Instruments))
	for _, entry := range file.Instruments {
		if entry.Symbol == "" {
			return nil, fmt.Errorf("instrument with empty symbol")
		}
		if seen[entry.Symbol] {
			return nil, fmt.Errorf("duplicate instrument %q", entry.Symbol)
		}
		seen[entry.Symbol] = true

		tick, err := fpdecimal.FromString(entry.Tick)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: bad tick %q: %w", entry.Symbol, entry.Tick, err)
		}
		lot, err := fpdecimal.FromString(entry.Lot)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: bad lot %q: %w", entry.Symbol, entry.Lot, err)
		}

		instruments = append(instruments, Instrument{
			Symbol: entry.Symbol,
			Tick:   tick,
			Lot:    lot,
		})
	}

	return instruments, nil
}

// Symbols returns just the instrument symbols, in file order
func Symbols(instruments []Instrument) []string {
	symbols := make([]string, len(instruments))
	for i, instrument := range instruments {
		symbols[i] = instrument.Symbol
	}
	return symbols
}
