package chart

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// Label returns the row label used in chart files for a player column:
// H19..H5, S21..S13, PA, P10..P2.
func Label(col int) string {
	switch {
	case col < FirstSoft:
		return fmt.Sprintf("H%d", 19-col)
	case col < FirstPair:
		return fmt.Sprintf("S%d", 36-col)
	default:
		return "P" + shoe.Rank(35-col).String()
	}
}

func columnForLabel(label string) (int, bool) {
	for col := 0; col < PlayerCols; col++ {
		if strings.EqualFold(Label(col), label) {
			return col, true
		}
	}
	return 0, false
}

// Parse reads a chart file. Each non-comment line is a player label followed
// by ten action letters for dealer 2 through A. Every label must appear
// exactly once.
func Parse(r io.Reader) (Chart, error) {
	var c Chart
	var seen [PlayerCols]bool

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		col, ok := columnForLabel(fields[0])
		if !ok {
			return Chart{}, fmt.Errorf("line %d: unknown hand %q", lineNo, fields[0])
		}
		if seen[col] {
			return Chart{}, fmt.Errorf("line %d: duplicate hand %q", lineNo, fields[0])
		}
		if len(fields)-1 != DealerRows {
			return Chart{}, fmt.Errorf("line %d: expected %d actions, got %d", lineNo, DealerRows, len(fields)-1)
		}
		for row, f := range fields[1:] {
			a, err := rules.ParseAction(f)
			if err != nil {
				return Chart{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.Actions[row][col] = a
		}
		seen[col] = true
	}
	if err := scanner.Err(); err != nil {
		return Chart{}, fmt.Errorf("read chart: %w", err)
	}

	for col, ok := range seen {
		if !ok {
			return Chart{}, fmt.Errorf("missing hand %s", Label(col))
		}
	}
	return c, nil
}

// LoadFile parses the chart at path.
func LoadFile(path string) (Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chart{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Chart{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Format writes the chart in the layout Parse reads.
func (c *Chart) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# dealer")
	for _, r := range shoe.Ranks {
		fmt.Fprintf(bw, " %s", r)
	}
	fmt.Fprintln(bw)

	for col := 0; col < PlayerCols; col++ {
		if col == FirstSoft || col == FirstPair {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%-4s", Label(col))
		for row := 0; row < DealerRows; row++ {
			fmt.Fprintf(bw, " %c", c.Actions[row][col].Letter())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteFile writes the chart to path via a temporary file in the same
// directory and a rename, so readers never observe a partial chart.
func (c *Chart) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := c.Format(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create chart temp: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write chart temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync chart temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close chart temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod chart temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist chart: %w", err)
	}
	return nil
}
