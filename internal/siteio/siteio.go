// Package siteio reads the plain-text site file format of spec.md §6: a
// first line giving the site count, followed by that many "x y" lines.
package siteio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arl/annulus/geom"
)

// Read parses r as a site file: a first line "n", then n lines "x y".
// Site indices are assigned by input order, starting at 0.
func Read(r io.Reader) ([]geom.Point, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("siteio: empty input, expected a site count")
	}
	var n int
	if _, err := fmt.Sscanf(sc.Text(), "%d", &n); err != nil {
		return nil, fmt.Errorf("siteio: invalid site count %q: %w", sc.Text(), err)
	}
	if n < 0 {
		return nil, fmt.Errorf("siteio: negative site count %d", n)
	}

	points := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("siteio: expected %d sites, found %d", n, i)
		}
		var x, y float64
		if _, err := fmt.Sscanf(sc.Text(), "%g %g", &x, &y); err != nil {
			return nil, fmt.Errorf("siteio: invalid site line %d (%q): %w", i, sc.Text(), err)
		}
		points = append(points, geom.Point{X: x, Y: y, Idx: i})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("siteio: %w", err)
	}
	return points, nil
}
