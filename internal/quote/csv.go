package quote

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the export column set.
var csvHeader = []string{"ID", "Route", "Load Size", "Price", "Created At", "Status"}

// ExportCSV writes the filtered quotes as CSV. All matching pages are
// walked; the filter's Limit bounds the page size, not the export.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, filter ListFilter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for {
		quotes, next, err := s.repo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing quotes for export: %w", err)
		}

		for _, q := range quotes {
			record := []string{
				q.ID,
				RouteSummary(q.Stops),
				string(q.LoadSize),
				"₦" + FormatNaira(q.Price),
				q.CreatedAt.Format("2006-01-02"),
				string(q.Status),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("writing csv record: %w", err)
			}
		}

		if next.IsZero() {
			break
		}
		filter.Cursor = next
	}

	cw.Flush()
	return cw.Error()
}

// RouteSummary renders a stop list as "pickup: Ikeja → dropoff: Lekki".
func RouteSummary(stops []Stop) string {
	parts := make([]string, 0, len(stops))
	for _, s := range stops {
		parts = append(parts, string(s.Type)+": "+s.Location)
	}
	return strings.Join(parts, " → ")
}

// FormatNaira renders an amount with thousands separators, e.g. 23438
// becomes "23,438".
func FormatNaira(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}

	return b.String()
}
