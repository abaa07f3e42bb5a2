package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
)

// WriteBillCSV writes the bill of quantities with a header row.
func WriteBillCSV(w io.Writer, lines []boq.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"element", "count", "total_length_m", "total_area_m2"}); err != nil {
		return fmt.Errorf("write bill header: %w", err)
	}
	for _, l := range lines {
		rec := []string{
			l.Type,
			strconv.Itoa(l.Count),
			strconv.FormatFloat(l.TotalLength, 'f', 3, 64),
			strconv.FormatFloat(l.TotalArea, 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write bill row %q: %w", l.Type, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMeasurementsCSV writes the committed measurements with a header row.
func WriteMeasurementsCSV(w io.Writer, measurements []annotate.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x1", "y1", "x2", "y2", "distance_m"}); err != nil {
		return fmt.Errorf("write measurements header: %w", err)
	}
	for i, m := range measurements {
		rec := []string{
			strconv.FormatFloat(m.P1.X, 'f', 3, 64),
			strconv.FormatFloat(m.P1.Y, 'f', 3, 64),
			strconv.FormatFloat(m.P2.X, 'f', 3, 64),
			strconv.FormatFloat(m.P2.Y, 'f', 3, 64),
			strconv.FormatFloat(m.Distance, 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write measurement %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
