package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wonny/scorecard/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Output Formatting
// analyze / schedule run 이 동일한 출력 포맷을 사용
// ═══════════════════════════════════════════════════════════

const (
	formatTable = "table"
	formatJSON  = "json"

	doubleLine = "═══════════════════════════════════════════════════════════════════════════"
	singleLine = "───────────────────────────────────────────────────────────────────────────"
)

// writeReport renders r in the requested format
func writeReport(w io.Writer, format string, r *contracts.Report, cached bool) error {
	switch format {
	case formatJSON:
		return writeJSON(w, r)
	case formatTable:
		writeTable(w, r, cached)
		return nil
	default:
		return fmt.Errorf("unknown format %q (table|json)", format)
	}
}

func writeJSON(w io.Writer, r *contracts.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// writeTable prints the ranked scorecard for terminals
func writeTable(w io.Writer, r *contracts.Report, cached bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleLine)
	fmt.Fprintf(w, "  Seller Scorecard  (policy: %s)\n", r.PolicyID)
	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "  Run ID    : %s\n", r.RunID)
	fmt.Fprintf(w, "  Generated : %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if cached {
		fmt.Fprintln(w, "  Cache     : HIT")
	}
	fmt.Fprintln(w, singleLine)

	fmt.Fprintf(w, "  %-4s %-12s %-22s %12s %12s %6s %10s\n", "#", "SELLER", "NAME", "REVENUE", "PROFIT", "SALES", "BONUS")
	for i, s := range r.Sellers {
		fmt.Fprintf(w, "  %-4d %-12s %-22s %12s %12s %6d %10s\n",
			i+1, truncate(s.SellerID, 12), truncate(s.Name, 22),
			s.Revenue.String(), s.Profit.String(), s.SalesCount, s.Bonus.String())
		if len(s.TopProducts) > 0 {
			fmt.Fprintf(w, "       top: %s\n", formatTopProducts(s.TopProducts))
		}
	}

	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "  Total bonus : %s\n", r.TotalBonus().String())
	if total := r.Skipped.Total(); total > 0 {
		fmt.Fprintf(w, "  ⚠️  Skipped  : %d unknown sellers, %d malformed items, %d unknown products\n",
			r.Skipped.UnknownSellers, r.Skipped.MalformedItems, r.Skipped.UnknownProducts)
	}
	fmt.Fprintln(w, doubleLine)
}

func formatTopProducts(products []contracts.TopProduct) string {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, fmt.Sprintf("%s×%g", p.SKU, p.Quantity))
	}
	return strings.Join(parts, ", ")
}

// truncate shortens s to n runes, marking the cut with …
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
