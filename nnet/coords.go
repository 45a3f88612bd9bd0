package nnet

import "fmt"

// GTP column letters; "I" is skipped.
const columnNames = "ABCDEFGHJKLMNOPQRST"

// LocationForCoord maps a zero-based (row, column) pair, row 0 at the top of
// the board, to a GTP location such as "D4".
func (c *Client) LocationForCoord(row, column int) string {
	return locationForCoord(c.params.BoardXSize, row, column)
}

func locationForCoord(size, row, column int) string {
	return fmt.Sprintf("%c%d", columnNames[column], size-row)
}

// locationForIndex maps a flat policy-vector index to a location. The index
// just past the last board point is the pass sentinel.
func (c *Client) locationForIndex(k int) string {
	w, h := c.params.BoardXSize, c.params.BoardYSize
	if k >= w*h {
		return "pass"
	}
	return locationForCoord(w, k/w, k%w)
}
