// Package ioformat reads and writes the line-oriented, comma-separated
// input and output files the command-line tool exchanges with the rest
// of the world.
package ioformat

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
)

// Input holds everything parsed from an input file: the ULD fleet, the
// package manifest, and the per-ULD cost multiplier K.
type Input struct {
	ULDs     []*model.ULD
	Packages []*model.Package
	K        int
}

// Parse reads the counted-section input format:
//
//	<uld_count>
//	<uld_id>,<L>,<W>,<H>,<weight_capacity>   (uld_count lines)
//	<package_count>
//	<pkg_id>,<L>,<W>,<H>,<weight>,<Priority|Economy>,<delay>   (package_count lines)
//	<K>
func Parse(r io.Reader) (Input, error) {
	scanner := bufio.NewScanner(r)
	lines, err := readLines(scanner)
	if err != nil {
		return Input{}, fmt.Errorf("ioformat: reading input: %w", err)
	}

	cursor := 0
	uldCount, err := readCount(lines, &cursor, "uld_count")
	if err != nil {
		return Input{}, err
	}

	ulds := make([]*model.ULD, 0, uldCount)
	for i := 0; i < uldCount; i++ {
		u, err := parseULDLine(nextLine(lines, &cursor), i)
		if err != nil {
			return Input{}, err
		}
		ulds = append(ulds, u)
	}

	pkgCount, err := readCount(lines, &cursor, "package_count")
	if err != nil {
		return Input{}, err
	}

	packages := make([]*model.Package, 0, pkgCount)
	for i := 0; i < pkgCount; i++ {
		p, err := parsePackageLine(nextLine(lines, &cursor), i)
		if err != nil {
			return Input{}, err
		}
		packages = append(packages, p)
	}

	kLine, err := requireLine(lines, &cursor, "K")
	if err != nil {
		return Input{}, err
	}
	k, err := strconv.Atoi(strings.TrimSpace(kLine))
	if err != nil {
		return Input{}, fmt.Errorf("ioformat: K must be an integer, got %q: %w", kLine, err)
	}

	return Input{ULDs: ulds, Packages: packages, K: k}, nil
}

func readLines(scanner *bufio.Scanner) ([]string, error) {
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func nextLine(lines []string, cursor *int) string {
	if *cursor >= len(lines) {
		return ""
	}
	line := lines[*cursor]
	*cursor++
	return line
}

func requireLine(lines []string, cursor *int, what string) (string, error) {
	if *cursor >= len(lines) {
		return "", fmt.Errorf("ioformat: expected %s, reached end of input", what)
	}
	return nextLine(lines, cursor), nil
}

func readCount(lines []string, cursor *int, what string) (int, error) {
	line, err := requireLine(lines, cursor, what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("ioformat: %s must be an integer, got %q: %w", what, line, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("ioformat: %s cannot be negative, got %d", what, n)
	}
	return n, nil
}

func parseCSVLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.TrimLeadingSpace = true
	fields, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ioformat: malformed row %q: %w", line, err)
	}
	return fields, nil
}

func parseULDLine(line string, idx int) (*model.ULD, error) {
	fields, err := parseCSVLine(line)
	if err != nil {
		return nil, err
	}
	if len(fields) != 5 {
		return nil, fmt.Errorf("ioformat: ULD row %d: expected 5 fields, got %d (%q)", idx+1, len(fields), line)
	}
	l, err := parseInt(fields[1], "ULD L")
	if err != nil {
		return nil, err
	}
	w, err := parseInt(fields[2], "ULD W")
	if err != nil {
		return nil, err
	}
	h, err := parseInt(fields[3], "ULD H")
	if err != nil {
		return nil, err
	}
	weightCap, err := parseInt(fields[4], "ULD weight_capacity")
	if err != nil {
		return nil, err
	}
	return model.NewULD(fields[0], l, h, w, weightCap), nil
}

func parsePackageLine(line string, idx int) (*model.Package, error) {
	fields, err := parseCSVLine(line)
	if err != nil {
		return nil, err
	}
	if len(fields) != 7 {
		return nil, fmt.Errorf("ioformat: package row %d: expected 7 fields, got %d (%q)", idx+1, len(fields), line)
	}
	l, err := parseInt(fields[1], "package L")
	if err != nil {
		return nil, err
	}
	w, err := parseInt(fields[2], "package W")
	if err != nil {
		return nil, err
	}
	h, err := parseInt(fields[3], "package H")
	if err != nil {
		return nil, err
	}
	weight, err := parseInt(fields[4], "package weight")
	if err != nil {
		return nil, err
	}
	priority, err := parseClass(fields[5])
	if err != nil {
		return nil, fmt.Errorf("ioformat: package row %d: %w", idx+1, err)
	}
	// delay is present and read even for priority rows; it is only
	// applied to cost for unloaded economy packages.
	delay, err := parseInt(fields[6], "package delay")
	if err != nil {
		return nil, err
	}
	return model.NewPackage(fields[0], l, w, h, weight, priority, delay), nil
}

func parseClass(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "Priority":
		return true, nil
	case "Economy":
		return false, nil
	default:
		return false, fmt.Errorf("class must be Priority or Economy, got %q", s)
	}
}

func parseInt(s, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("ioformat: %s must be an integer, got %q: %w", what, s, err)
	}
	return n, nil
}

// Result is the caller-supplied summary needed to write the output file.
type Result struct {
	TotalCost        int
	NumLoaded        int
	PriorityULDCount int
}

// Write emits the counted-section output format: a summary line followed
// by one placement row per package, loaded or not.
func Write(w io.Writer, result Result, packages []*model.Package) error {
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(buf, "%d,%d,%d\n", result.TotalCost, result.NumLoaded, result.PriorityULDCount); err != nil {
		return fmt.Errorf("ioformat: writing summary line: %w", err)
	}
	for _, p := range packages {
		if err := writePackageLine(buf, p); err != nil {
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("ioformat: flushing output: %w", err)
	}
	return nil
}

func writePackageLine(w io.Writer, p *model.Package) error {
	box, ok := p.Box()
	if !ok {
		_, err := fmt.Fprintf(w, "%s,NONE,-1,-1,-1,-1,-1,-1\n", p.ID)
		if err != nil {
			return fmt.Errorf("ioformat: writing unloaded row for %s: %w", p.ID, err)
		}
		return nil
	}
	max := box.Origin.Add(geometry.Point3{X: box.Size.L, Y: box.Size.H, Z: box.Size.W})
	_, err := fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d,%d,%d\n",
		p.ID, p.LoadedULD,
		box.Origin.X, box.Origin.Y, box.Origin.Z,
		max.X, max.Y, max.Z)
	if err != nil {
		return fmt.Errorf("ioformat: writing placement row for %s: %w", p.ID, err)
	}
	return nil
}
