package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/bjaus/condtable"
)

const envPrefix = "CONDTABLE"

// settings is everything the command reads from its config file, the
// environment and flags.
type settings struct {
	Data       string             `mapstructure:"data"`
	Rules      string             `mapstructure:"rules"`
	Groups     []condtable.Group  `mapstructure:"groups"`
	GroupsFile string             `mapstructure:"groups_file"`
	Columns    []condtable.Column `mapstructure:"columns"`
	Table      condtable.Config   `mapstructure:"table"`
	Format     string             `mapstructure:"format"`
	Border     string             `mapstructure:"border"`
	Color      bool               `mapstructure:"color"`
	Strict     bool               `mapstructure:"strict"`
	Log        logSettings        `mapstructure:"log"`
}

type logSettings struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", string(condtable.Terminal))
	v.SetDefault("border", "rounded")
	v.SetDefault("table.sticky", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	return v
}

// loadSettings reads the optional config file and decodes every setting.
func loadSettings(v *viper.Viper, path string) (settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	for i, c := range s.Columns {
		if c.Type == "" {
			continue
		}
		t, err := condtable.ParseValueType(string(c.Type))
		if err != nil {
			return settings{}, fmt.Errorf("column %q: %w", c.Key, err)
		}
		s.Columns[i].Type = t
	}
	return s, nil
}

// readRows decodes a JSON array of row objects from path, or stdin for "-".
func readRows(path string) ([]condtable.Row, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	var rows []condtable.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

func readRules(path string) ([]condtable.Rule, error) {
	if path == "" {
		return nil, nil
	}
	f, err := condtable.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return condtable.LoadRules(r, f)
}

func readGroups(path string) ([]condtable.Group, error) {
	f, err := condtable.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return condtable.LoadGroups(r, f)
}

func open(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// inferColumns lists the keys of the first row in sorted order. Columns
// whose first value is a number are numeric.
func inferColumns(rows []condtable.Row) []condtable.Column {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0]
	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	cols := make([]condtable.Column, len(keys))
	for i, k := range keys {
		t := condtable.TypeString
		switch first[k].(type) {
		case float64, int, int64:
			t = condtable.TypeNumber
		}
		cols[i] = condtable.Column{Key: k, Type: t, IsMetric: t == condtable.TypeNumber}
	}
	return cols
}
