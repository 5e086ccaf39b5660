package model

// Transfer is one row of the input transfer dataset. Player and Season are
// extracted for matching; Row carries every original cell unchanged so the
// merge output can reproduce the input columns verbatim.
type Transfer struct {
	Player string   `json:"player"`
	Season string   `json:"season"` // compact form, e.g. "10/11"
	Row    []string `json:"row"`
}

// TransferSet is a parsed transfer dataset: the original header plus one
// Transfer per data row, in file order.
type TransferSet struct {
	Header    []string   `json:"header"`
	Transfers []Transfer `json:"transfers"`
}
