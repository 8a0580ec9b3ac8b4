package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds defaults loaded from an optional TOML config file. Command-line
// flags and environment variables always win; file values only fill in
// settings that were left unset.
type File struct {
	Store struct {
		APIBase string `toml:"api_base"`
		Market  string `toml:"market"`
		Locale  string `toml:"locale"`
	} `toml:"store"`

	Download struct {
		Dir        string `toml:"dir"`
		TimeoutSec int    `toml:"timeout_sec"`
		ChunkSize  int    `toml:"chunk_size"`
	} `toml:"download"`

	History struct {
		Path string `toml:"path"`
	} `toml:"history"`
}

// FileFlag returns the shared --config flag bound to path
func FileFlag(path *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to TOML config file",
		Destination: path,
		Sources:     cli.EnvVars("STOREGET_CONFIG"),
	}
}

// LoadFile parses the TOML config file. An empty path yields an empty File.
func LoadFile(path string) (*File, error) {
	var f File
	if path == "" {
		return &f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &f, nil
}
