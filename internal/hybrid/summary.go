package hybrid

import (
	"fmt"
	"io"
	"strings"

	"hybrid-sim/internal/analysis"
	"hybrid-sim/internal/model"
)

// WriteSummary prints a human-readable digest of res.
func WriteSummary(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	curtailed := analysis.Describe(res.CombinedCurtailment)
	missed := analysis.Describe(res.EnergyShortfall)

	var b strings.Builder
	b.WriteString("\nHybrid Plant Results\n")
	fmt.Fprintf(&b, "Hybrid Annual Energy: %s\n", formatBreakdown(res.AnnualEnergies, "%.0f kWh"))
	fmt.Fprintf(&b, "Capacity factors:     %s\n", formatBreakdown(res.CapacityFactors, "%.2f%%"))
	fmt.Fprintf(&b, "Real LCOE:            %.3f cents/kWh\n", res.LCOEReal)
	fmt.Fprintf(&b, "Capex=$%.2f Opex=$%.2f/yr Hybrid NPV=$%.2f\n", res.Capex, res.Opex, res.HybridNPV)
	fmt.Fprintf(&b, "Curtailed: %.0f kWh over %d h  Shortfall: %.0f kWh over %d h\n",
		curtailed.Sum, curtailed.NonZeroHours, missed.Sum, missed.NonZeroHours)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatBreakdown(bd model.Breakdown, valueFmt string) string {
	parts := make([]string, 0, len(bd.ByTech)+1)
	for _, k := range model.KnownKinds {
		v, ok := bd.ByTech[k]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s="+valueFmt, k, v))
	}
	parts = append(parts, fmt.Sprintf("hybrid="+valueFmt, bd.Hybrid))
	return strings.Join(parts, " ")
}
