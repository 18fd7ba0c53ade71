package hexagg

// Row is one long-format T_hex output row: within a (H3ID, Res) group,
// AnchorID values are unique and Seconds is non-decreasing when sorted
// ascending.
type Row struct {
	H3ID     uint64
	Res      uint8
	AnchorID int32
	Seconds  uint16
}
