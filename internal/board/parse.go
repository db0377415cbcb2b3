package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads a map in text format and returns its Terrain.
//
// Each non-empty line is one row, with trailing carriage returns stripped:
// '.' free, '#' obstacle, 'X' unbuildable, 'S' spawn, 'T' target.
// At least one spawn and exactly one target are required.
func Parse(r io.Reader) (*Terrain, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// ParseLayout reads a map that may already carry placed pieces, such as one
// printed by a search. Piece cells (see Cell.IsPieceSymbol) are free in the
// returned Terrain and keep their symbol in the returned Grid, where they
// block like any placed piece.
func ParseLayout(r io.Reader) (*Terrain, *Grid, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	return parseLines(lines, true)
}

// ParseLayoutFile opens and parses the layout at path.
func ParseLayoutFile(path string) (*Terrain, *Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()

	t, g, err := ParseLayout(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, g, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	return lines, nil
}

// ParseString is Parse over an in-memory map.
func ParseString(s string) (*Terrain, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens and parses the map at path.
func ParseFile(path string) (*Terrain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseLines builds a Terrain from map rows that are already split.
func ParseLines(lines []string) (*Terrain, error) {
	t, _, err := parseLines(lines, false)
	return t, err
}

func parseLines(lines []string, withPieces bool) (*Terrain, *Grid, error) {
	if len(lines) == 0 {
		return nil, nil, ErrEmptyMap
	}

	cols := len(lines[0])
	g := NewGrid(len(lines), cols)
	var placed []Position
	for r, line := range lines {
		if len(line) != cols {
			return nil, nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, r, len(line), cols)
		}
		for c := 0; c < cols; c++ {
			ch := Cell(line[c])
			switch {
			case ch.IsTerrain():
				g.set(Pos(r, c), ch)
			case withPieces && ch.IsPieceSymbol():
				g.set(Pos(r, c), Free)
				placed = append(placed, Pos(r, c))
			default:
				return nil, nil, invalidCellError(Pos(r, c), line[c])
			}
		}
	}

	t, err := NewTerrain(g)
	if err != nil {
		return nil, nil, err
	}
	layout := t.Grid()
	for _, p := range placed {
		layout.set(p, Cell(lines[p.Row][p.Col]))
	}
	return t, layout, nil
}
