package diag

// Severity orders diagnostics; anything at SevError or above stops the build.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ label, sarif string }{
	SevInfo:    {"INFO", "note"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].label
	}
	return "UNKNOWN"
}

// SARIFLevel is the result level SARIF 2.1.0 uses for s.
func (s Severity) SARIFLevel() string {
	if int(s) < len(severityNames) {
		return severityNames[s].sarif
	}
	return "none"
}
