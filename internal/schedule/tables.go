package schedule

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tables embed.FS

type middleTable struct {
	Days []MiddleDay `yaml:"days"`
}

type highTable struct {
	Days []HighDay `yaml:"days"`
}

// LoadMiddleDays decodes the compiled-in middle-school table.
func LoadMiddleDays() ([]MiddleDay, error) {
	var t middleTable
	if err := decodeTable("tables/middle.yaml", &t); err != nil {
		return nil, err
	}
	return t.Days, nil
}

// LoadHighDays decodes the compiled-in high-school table.
func LoadHighDays() ([]HighDay, error) {
	var t highTable
	if err := decodeTable("tables/high.yaml", &t); err != nil {
		return nil, err
	}
	return t.Days, nil
}

func decodeTable(name string, out any) error {
	data, err := tables.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

var (
	defaultOnce   sync.Once
	defaultMiddle Matrix
	defaultHigh   Matrix
	defaultNames  map[string][]string
	defaultErr    error
)

func loadDefaults() {
	middleDays, err := LoadMiddleDays()
	if err != nil {
		defaultErr = err
		return
	}
	highDays, err := LoadHighDays()
	if err != nil {
		defaultErr = err
		return
	}
	if defaultMiddle, err = BuildMiddle(middleDays); err != nil {
		defaultErr = err
		return
	}
	if defaultHigh, err = BuildHigh(highDays); err != nil {
		defaultErr = err
		return
	}
	defaultNames = map[string][]string{"middle": {}, "high": {}}
	for _, d := range middleDays {
		defaultNames["middle"] = append(defaultNames["middle"], d.Name)
	}
	for _, d := range highDays {
		defaultNames["high"] = append(defaultNames["high"], d.Name)
	}
}

// Defaults builds the compiled-in matrices once.
func Defaults() (middle, high Matrix, err error) {
	defaultOnce.Do(loadDefaults)
	return defaultMiddle, defaultHigh, defaultErr
}

// DayNames returns the day-type names for "middle" or "high" in matrix order.
func DayNames(school string) []string {
	defaultOnce.Do(loadDefaults)
	return append([]string(nil), defaultNames[school]...)
}
