package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultSeedURL      = "https://api.stability.farm"
	defaultPollInterval = 90 * time.Second
	defaultListenAddr   = ":8080"
	defaultSnapshotDir  = "snapshots"
)

// Config holds the runtime settings of the enrichment service.
type Config struct {
	SeedURL       string
	PollInterval  time.Duration
	ListenAddr    string
	SnapshotDir   string
	RPCEndpoint   string
	PriceFallback string
	TokenListPath string
	// LabelOverrides maps lowercase vault addresses to display names that
	// win over the strategy-derived label.
	LabelOverrides map[string]string
}

type ConfigTmp struct {
	SeedURL        string            `yaml:"seed_url"`
	PollInterval   time.Duration     `yaml:"poll_interval"`
	ListenAddr     string            `yaml:"listen_addr"`
	SnapshotDir    string            `yaml:"snapshot_dir"`
	RPCEndpoint    string            `yaml:"rpc_endpoint,omitempty"`
	PriceFallback  string            `yaml:"price_fallback,omitempty"`
	TokenListPath  string            `yaml:"token_list,omitempty"`
	LabelOverrides map[string]string `yaml:"label_overrides,omitempty"`
}

func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	seed := flag.String("seed", defaultSeedURL, "aggregation API base URL")
	poll := flag.Duration("pollinterval", defaultPollInterval, "refresh cycle interval")
	listen := flag.String("listen", defaultListenAddr, "http listen address")
	snapshotDir := flag.String("snapshotdir", defaultSnapshotDir, "directory for run snapshot logs")
	rpc := flag.String("rpc", "", "json-rpc endpoint for direct vault reads, empty disables reads")
	fallback := flag.String("pricefallback", "", "exchange used for missing prices: binance or bybit")
	flag.Parse()

	if *configPath != "" {
		return FromFile(*configPath)
	}

	cfg := Config{
		SeedURL:       *seed,
		PollInterval:  *poll,
		ListenAddr:    *listen,
		SnapshotDir:   *snapshotDir,
		RPCEndpoint:   *rpc,
		PriceFallback: *fallback,
	}
	return cfg, validate(cfg)
}

// FromFile loads and validates a yaml config at the given path.
func FromFile(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		SeedURL:        tmp.SeedURL,
		PollInterval:   tmp.PollInterval,
		ListenAddr:     tmp.ListenAddr,
		SnapshotDir:    tmp.SnapshotDir,
		RPCEndpoint:    tmp.RPCEndpoint,
		PriceFallback:  tmp.PriceFallback,
		TokenListPath:  tmp.TokenListPath,
		LabelOverrides: tmp.LabelOverrides,
	}
	if cfg.SeedURL == "" {
		cfg.SeedURL = defaultSeedURL
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = defaultSnapshotDir
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	if cfg.PollInterval < time.Second {
		return fmt.Errorf("incorrect 'poll_interval' param: %s, must be at least 1s", cfg.PollInterval)
	}
	switch cfg.PriceFallback {
	case "", "binance", "bybit":
	default:
		return fmt.Errorf("incorrect 'price_fallback' param: %s, must be binance or bybit", cfg.PriceFallback)
	}
	return nil
}
