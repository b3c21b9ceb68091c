// Package config parses the shell's startup flags with spf13/pflag,
// the flag library used across the example corpus's CLI tools
// (intel-PerfSpect, moby, containerd-nydus-snapshotter), rather than
// hand-rolling flag parsing on top of the standard library.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Defaults match the constants the original shell's build supplied
// (printed at startup as "Frame Store Size = <N>; Variable Store Size = <M>").
const (
	DefaultFrameStoreSize    = 24
	DefaultVariableStoreSize = 10
	DefaultMaxScripts        = 1000
	DefaultWorkers           = 2
)

// Config holds every tunable the CLI exposes.
type Config struct {
	FrameStoreSize    int
	VariableStoreSize int
	MaxScripts        int
	Workers           int
	BackingStoreDir   string
}

// Parse builds a Config from args (typically os.Args[1:]), applying
// defaults for anything unset.
func Parse(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("osushell", pflag.ContinueOnError)

	cfg := &Config{}
	fs.IntVar(&cfg.FrameStoreSize, "frame-store-size", DefaultFrameStoreSize, "total frame-store capacity in lines")
	fs.IntVar(&cfg.VariableStoreSize, "variable-store-size", DefaultVariableStoreSize, "number of shell variable slots")
	fs.IntVar(&cfg.MaxScripts, "max-scripts", DefaultMaxScripts, "script-store capacity in lines")
	fs.IntVar(&cfg.Workers, "workers", DefaultWorkers, "worker goroutines used by MT RR/RR30")
	fs.StringVar(&cfg.BackingStoreDir, "backing-store-dir", "backing_store", "directory mirroring loaded scripts")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.FrameStoreSize%3 != 0 {
		return nil, fmt.Errorf("config: --frame-store-size must be a multiple of the frame size (3), got %d", cfg.FrameStoreSize)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("config: --workers must be at least 1, got %d", cfg.Workers)
	}

	return cfg, nil
}

// Banner renders the exact startup line printed once at shell launch.
func (c *Config) Banner() string {
	return fmt.Sprintf("Frame Store Size = %d; Variable Store Size = %d\n", c.FrameStoreSize, c.VariableStoreSize)
}

// FrameCount derives the number of FrameSize-line frames the store holds.
func (c *Config) FrameCount() int {
	const frameSize = 3
	return c.FrameStoreSize / frameSize
}
