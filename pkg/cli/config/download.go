package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Download holds downloader configuration
type Download struct {
	Dir       string
	Timeout   time.Duration
	ChunkSize int
}

// Flags returns CLI flags for downloader configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Download directory (default: downloads/ next to the executable)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("STOREGET_DIR"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Total download timeout (default: 120s)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("STOREGET_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "chunk-size",
			Usage:       "Streaming chunk size in bytes (default: 8192)",
			Destination: &c.ChunkSize,
			Sources:     cli.EnvVars("STOREGET_CHUNK_SIZE"),
		},
	}
}

// ApplyFile fills unset values from the config file
func (c *Download) ApplyFile(f *File) {
	if c.Dir == "" {
		c.Dir = f.Download.Dir
	}
	if c.Timeout == 0 && f.Download.TimeoutSec > 0 {
		c.Timeout = time.Duration(f.Download.TimeoutSec) * time.Second
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = f.Download.ChunkSize
	}
}

// ResolveDir returns the absolute destination directory, defaulting to a
// "downloads" directory next to the executable when none was configured.
func (c *Download) ResolveDir() (string, error) {
	if c.Dir != "" {
		dir, err := filepath.Abs(c.Dir)
		if err != nil {
			return "", goerr.Wrap(err, "failed to resolve download directory", goerr.V("dir", c.Dir))
		}
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", goerr.Wrap(err, "failed to locate executable for default download directory")
	}
	return filepath.Join(filepath.Dir(exe), "downloads"), nil
}
