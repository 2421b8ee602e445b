package setup

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vaultlens/vaultlens/config"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		seedURL         string
		pollIntervalStr string
		listenAddr      string
		snapshotDir     string
		rpcEndpoint     string
		priceFallback   string
		confirm         bool
	)

	// defaults
	seedURL = "https://api.stability.farm"
	pollIntervalStr = "90s"
	listenAddr = ":8080"
	snapshotDir = "snapshots"
	priceFallback = "none"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("VAULTLENS CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's wire up your vault dashboard.\n"))

	fmt.Println(stepStyle.Render("STEP 1: DATA SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Aggregation API URL").
				Description("Base URL of the vault aggregation API").
				Value(&seedURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Poll Interval").
				Description("Duration string (e.g. 30s, 90s, 5m)").
				Value(&pollIntervalStr).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d < time.Second {
						return fmt.Errorf("must be at least 1s")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("VAULTLENS CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: CHAIN READS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("JSON-RPC Endpoint").
				Description("Leave empty to serve API figures without direct vault reads").
				Value(&rpcEndpoint),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("VAULTLENS CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: PRICE FALLBACK"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Exchange for missing token prices").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
				).
				Value(&priceFallback),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("VAULTLENS CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: SERVING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("host:port for the dashboard (e.g. :8080)").
				Value(&listenAddr),
			huh.NewInput().
				Title("Snapshot Directory").
				Description("Directory for run snapshot logs").
				Value(&snapshotDir),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("VAULTLENS CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Seed: %s\nInterval: %s\nRPC: %s\nFallback: %s\nListen: %s\nSnapshots: %s\n",
		seedURL, pollIntervalStr, orNone(rpcEndpoint), priceFallback, listenAddr, snapshotDir,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	pollInterval, _ := time.ParseDuration(pollIntervalStr)
	if priceFallback == "none" {
		priceFallback = ""
	}

	cfgTmp := config.ConfigTmp{
		SeedURL:       seedURL,
		PollInterval:  pollInterval,
		ListenAddr:    listenAddr,
		SnapshotDir:   snapshotDir,
		RPCEndpoint:   rpcEndpoint,
		PriceFallback: priceFallback,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting service...", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be a valid http(s) URL")
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
