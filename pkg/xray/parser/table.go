package parser

import (
	"strconv"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray/models"
)

// emptyHeader names header cells that have no text.
const emptyHeader = "__EMPTY"

// Tabulate turns raw records into a dataset. The header is the first row of
// the used range (leading blank rows and columns are ignored), blank data
// rows are dropped and short rows are padded with "".
func Tabulate(name string, records [][]string) models.Dataset {
	ds := models.Dataset{Name: name}

	minRow, maxRow, minCol, maxCol := findDataBounds(records)
	if minRow < 0 {
		return ds
	}

	width := maxCol - minCol + 1
	ds.Columns = headerNames(window(records[minRow], minCol, width))

	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		cells := window(records[rowIdx], minCol, width)
		if isBlank(cells) {
			continue
		}
		ds.Rows = append(ds.Rows, models.NewRow(ds.Columns, cells))
	}
	return ds
}

// headerNames names every header cell. Empty cells become __EMPTY, __EMPTY_1,
// and so on; repeated names get a _1, _2 suffix in order of appearance.
func headerNames(cells []string) []string {
	seen := make(map[string]int, len(cells))
	names := make([]string, len(cells))
	for i, cell := range cells {
		base := cell
		if base == "" {
			base = emptyHeader
		}
		name := base
		if counter := seen[base]; counter == 0 {
			seen[base] = 1
		} else {
			for {
				name = base + "_" + strconv.Itoa(counter)
				counter++
				if seen[name] == 0 {
					break
				}
			}
			seen[base] = counter
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// window returns width cells of row starting at col, padding with "".
func window(row []string, col, width int) []string {
	out := make([]string, width)
	for i := 0; i < width; i++ {
		if idx := col + i; idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
