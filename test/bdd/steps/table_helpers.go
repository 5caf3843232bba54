package steps

import (
	"fmt"
	"strconv"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
)

// rowInts parses the cells of a data table row as integers, skipping the first skip cells
func rowInts(row *messages.PickleTableRow, skip int) ([]int, error) {
	if skip > len(row.Cells) {
		return nil, fmt.Errorf("row has %d cells, cannot skip %d", len(row.Cells), skip)
	}
	cells := row.Cells[skip:]
	values := make([]int, len(cells))
	for i, cell := range cells {
		n, err := strconv.Atoi(strings.TrimSpace(cell.Value))
		if err != nil {
			return nil, fmt.Errorf("cell %d: %q is not an integer", skip+i+1, cell.Value)
		}
		values[i] = n
	}
	return values, nil
}

// parseCityList parses "1, 2, 4" or "1 -> 2 -> 4"; an empty string is an empty list
func parseCityList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '-' || r == '>'
	})
	cities := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not a city id", field)
		}
		cities = append(cities, n)
	}
	return cities, nil
}
