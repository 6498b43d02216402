package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/deeppdcfr/internal/fileutil"
	"github.com/lox/deeppdcfr/sdk/analysis"
)

// CombosCmd lists a range's combos in combo ID order.
type CombosCmd struct {
	Range  string `arg:"" help:"Range in Pio notation"`
	Board  string `short:"b" help:"Remove combos blocked by these board cards"`
	Format string `short:"f" default:"csv" enum:"csv,json" help:"Output format"`
	Out    string `short:"o" type:"path" help:"Write to this file instead of stdout"`
}

type comboRow struct {
	Hand      string  `json:"hand"`
	HandID    uint16  `json:"hand_id"`
	Class     string  `json:"class"`
	Frequency float64 `json:"frequency"`
}

func (c *CombosCmd) Run(g *Globals) error {
	r, _, err := parseRangeOnBoard(c.Range, c.Board)
	if err != nil {
		return err
	}
	if c.Out == "" {
		return c.write(g.stdout(), r)
	}
	if err := fileutil.WriteAtomic(c.Out, 0o644, func(w io.Writer) error { return c.write(w, r) }); err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "Wrote %d combos to %s\n", r.Len(), c.Out)
	return nil
}

func (c *CombosCmd) write(w io.Writer, r *analysis.Range) error {
	combos := r.Combos()
	rows := make([]comboRow, len(combos))
	for i, wc := range combos {
		combo := wc.Combo()
		rows[i] = comboRow{Hand: combo.String(), HandID: wc.ID, Class: combo.HandClass(), Frequency: wc.Frequency}
	}

	if c.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hand", "hand_id", "class", "frequency"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Hand,
			strconv.Itoa(int(row.HandID)),
			row.Class,
			strconv.FormatFloat(row.Frequency, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
