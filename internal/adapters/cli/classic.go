package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// ParseClassicInput reads the whitespace-separated console format:
//
//	N M F
//	u v d      (M lines, one road each)
//	S
//	s1 ... sS  (S fuel station ids)
//
// Line breaks are not significant. Trailing input after the last station is ignored.
func ParseClassicInput(r io.Reader) (routing.Network, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	reader := &tokenReader{scanner: scanner}

	cities := reader.next("city count")
	roadCount := reader.next("road count")
	capacity := reader.next("fuel capacity")
	if reader.err == nil && roadCount < 0 {
		return routing.Network{}, fmt.Errorf("classic input: road count must not be negative, got %d", roadCount)
	}

	var roads []routing.Road
	for i := 0; i < roadCount && reader.err == nil; i++ {
		from := reader.next(fmt.Sprintf("road %d source", i+1))
		to := reader.next(fmt.Sprintf("road %d target", i+1))
		distance := reader.next(fmt.Sprintf("road %d distance", i+1))
		roads = append(roads, routing.Road{From: from, To: to, Distance: distance})
	}

	stationCount := reader.next("station count")
	if reader.err == nil && stationCount < 0 {
		return routing.Network{}, fmt.Errorf("classic input: station count must not be negative, got %d", stationCount)
	}

	var stations []int
	for i := 0; i < stationCount && reader.err == nil; i++ {
		stations = append(stations, reader.next(fmt.Sprintf("station %d", i+1)))
	}

	if reader.err != nil {
		return routing.Network{}, reader.err
	}

	return routing.Network{
		CityCount:    cities,
		FuelCapacity: capacity,
		Roads:        roads,
		FuelStations: stations,
	}, nil
}

// tokenReader keeps the first error so the parser reads straight through
type tokenReader struct {
	scanner *bufio.Scanner
	tokens  int
	err     error
}

func (t *tokenReader) next(what string) int {
	if t.err != nil {
		return 0
	}

	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			t.err = fmt.Errorf("classic input: reading %s: %w", what, err)
		} else {
			t.err = fmt.Errorf("classic input: unexpected end of input, expected %s", what)
		}
		return 0
	}
	t.tokens++

	n, err := strconv.Atoi(t.scanner.Text())
	if err != nil {
		t.err = fmt.Errorf("classic input: token %d (%s): %q is not an integer", t.tokens, what, t.scanner.Text())
		return 0
	}
	return n
}
