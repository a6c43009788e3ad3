// Package ingest reads the 311 CSV export into record structs.
//
// The decoder is hand-rolled rather than encoding/csv because the load path
// is the hot path: one reusable field slice per reader, no per-row reader
// state, and carriage returns handled inline so the same code accepts Unix
// and Windows line endings.
package ingest

// SplitLine splits one CSV line into its fields, honoring RFC-4180 style
// quoting: a quoted field may contain commas, and a doubled quote inside a
// quoted field is a literal quote. Carriage returns outside quotes are
// dropped. The final field is always emitted, so an empty line yields one
// empty field; callers skip blank lines before decoding.
//
// fields is reused as the backing slice for the result to avoid a fresh
// allocation per row. Pass nil when reuse does not matter.
func SplitLine(line string, fields []string) []string {
	fields = fields[:0]
	cur := make([]byte, 0, 64)
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur = append(cur, '"')
					i++ // consume the second quote
				} else {
					inQuotes = false
				}
			} else {
				cur = append(cur, c)
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			fields = append(fields, string(cur))
			cur = cur[:0]
		case '\r':
			// Windows line ending, drop it.
		default:
			cur = append(cur, c)
		}
	}
	fields = append(fields, string(cur))
	return fields
}
