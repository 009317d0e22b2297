package jsonio

// ScannerHooks contains block-scan hooks for reader whitespace and token scans.
type ScannerHooks interface {
	SkipWhitespace(data []byte, pos int) int
	FindQuoteOrEscape(data []byte, pos int) (quotePos int, escapePos int)
}

type scalarScannerHooks struct{}

func (s scalarScannerHooks) SkipWhitespace(data []byte, pos int) int {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\n', '\r', '\t':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func (s scalarScannerHooks) FindQuoteOrEscape(data []byte, pos int) (int, int) {
	for i := pos; i < len(data); i++ {
		switch data[i] {
		case '"':
			return i, -1
		case '\\':
			return -1, i
		}
	}
	return -1, -1
}
