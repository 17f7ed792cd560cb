package config

//go:generate go tool go-enum --marshal --names --nocase

// Specification of requested output type.
// ENUM(text, yaml, tokens)
type OutputFmt int

// Ext returns file extension for produced output.
func (x OutputFmt) Ext() string {
	switch x {
	case OutputFmtText:
		return ".txt"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtTokens:
		return ".tokens.yaml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
