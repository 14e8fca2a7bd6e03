package models

// Dataset represents the parsed rows of a single input file.
type Dataset struct {
	// Name is the file name the rows were read from (no path).
	Name string `json:"name"`
	// Columns is the header of the first sheet, in order.
	Columns []string `json:"columns"`
	// Rows contains the data records. Each row carries every column in Columns.
	Rows []Row `json:"-"`
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}
