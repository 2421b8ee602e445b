// Package classifier derives strategy display metadata: impermanent-loss
// tier, sanitized labels, protocol tags and capability flags.
package classifier

import (
	"regexp"
	"strings"

	"github.com/vaultlens/vaultlens/internal/domain"
)

// Impermanent-loss tiers forced by the vault's risk symbol.
const (
	ilTierRekt     = 9
	ilTierRektPlus = 10
)

const (
	riskSymbolRekt     = "REKT"
	riskSymbolRektPlus = "REKT+"
)

// truncatedAddressPattern matches embedded shortened addresses like
// "0xab12..f3e4" that some strategies append to their free-text.
var truncatedAddressPattern = regexp.MustCompile(`\s*0x[a-fA-F0-9]+\.\.[a-fA-F0-9]+\s*`)

// protocolLabels maps free-text markers to display labels, checked in
// a fixed order so output is deterministic.
var protocolMarkers = []string{"aave", "compound", "stargate", "stmatic"}

var protocolLabels = map[string]domain.ProtocolLabel{
	"aave":     {Title: "Aave", Logo: "/protocols/Aave.png"},
	"compound": {Title: "Compound", Logo: "/protocols/Compound.png"},
	"stargate": {Title: "Stargate", Logo: "/protocols/Stargate.svg"},
	"stmatic":  {Title: "Lido", Logo: "/protocols/Lido.png"},
}

// Result is the classification of one vault's strategy.
type Result struct {
	ILTier       int
	Label        string
	Protocols    []domain.ProtocolLabel
	Capabilities domain.StrategyCapabilities
}

// Classify derives strategy display metadata for a vault. The override
// table is a plain address-keyed substitution applied after the generic
// rules; it always wins.
func Classify(rec domain.VaultRecord, strategies domain.StrategyTable, overrides map[string]string) Result {
	meta, _ := strategies.Lookup(rec.StrategyShortID)

	tier := meta.DefaultILTier
	switch rec.RiskSymbol {
	case riskSymbolRekt:
		tier = ilTierRekt
	case riskSymbolRektPlus:
		tier = ilTierRektPlus
	}

	label := rec.StrategySpecific
	if meta.StripAddresses {
		label = truncatedAddressPattern.ReplaceAllString(label, "")
	}
	if override, ok := overrides[strings.ToLower(rec.Address)]; ok {
		label = override
	}

	var protocols []domain.ProtocolLabel
	if meta.ScanProtocols && rec.StrategySpecific != "" {
		text := strings.ToLower(rec.StrategySpecific)
		for _, marker := range protocolMarkers {
			if strings.Contains(text, marker) {
				protocols = append(protocols, protocolLabels[marker])
			}
		}
	}

	return Result{
		ILTier:    tier,
		Label:     label,
		Protocols: protocols,
		Capabilities: domain.StrategyCapabilities{
			HasSwapFees: meta.HasSwapFees,
			IsALM:       meta.IsALM,
		},
	}
}
