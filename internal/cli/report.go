package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/filtersfast/backend/internal/domain"
)

// writeMatchReport renders a wizard result for a terminal
func writeMatchReport(w io.Writer, result *domain.WizardResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Constraints: %s\n", describeConstraints(&result.Constraints))
	if result.CalculatedFlowRate != nil {
		fmt.Fprintf(&b, "Required flow rate: %s GPM\n", formatFloat(*result.CalculatedFlowRate))
	}
	if result.MaintenanceReminder != nil {
		fmt.Fprintf(&b, "%s\n", *result.MaintenanceReminder)
	}
	b.WriteString("\n")

	if len(result.Matches) == 0 {
		b.WriteString("No matching filters found. Try relaxing your constraints.\n")
	}

	for i, m := range result.Matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, m.Item.Name, m.ProductID)
		fmt.Fprintf(&b, "   Score: %d  Price: $%.2f\n", m.Score, m.Item.Price)
		for _, reason := range m.Reasoning {
			fmt.Fprintf(&b, "   - %s\n", reason)
		}
		for _, p := range m.Promotions {
			fmt.Fprintf(&b, "   %s (%s): %s\n", p.Title, p.Months, describeCodes(p.PromoCodes))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// describeConstraints lists the supplied constraints in a fixed order
func describeConstraints(c *domain.ConstraintSet) string {
	var parts []string
	add := func(name, value string) {
		parts = append(parts, name+"="+value)
	}

	if c.Environment != nil {
		add("environment", string(*c.Environment))
	}
	if c.System != nil {
		add("system", string(*c.System))
	}
	if c.Brand != nil {
		add("brand", *c.Brand)
	}
	if c.Series != nil {
		add("series", *c.Series)
	}
	if c.Diameter != nil {
		add("diameter", formatFloat(*c.Diameter))
	}
	if c.Length != nil {
		add("length", formatFloat(*c.Length))
	}
	if c.TopStyle != nil {
		add("topStyle", string(*c.TopStyle))
	}
	if c.BottomStyle != nil {
		add("bottomStyle", string(*c.BottomStyle))
	}
	if c.PoolVolume != nil {
		add("poolVolume", formatFloat(*c.PoolVolume))
	}
	if c.DesiredTurnoverHours != nil {
		add("desiredTurnoverHours", formatFloat(*c.DesiredTurnoverHours))
	}

	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func describeCodes(codes []domain.PromoCode) string {
	if len(codes) == 0 {
		return "no active codes"
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = c.Code
	}
	return strings.Join(names, ", ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
