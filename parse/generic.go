package parse

import "strings"

// DecodeGeneric keeps every meaningful line as-is.
func DecodeGeneric(text string) []GenericLine {
	return eachLine("generic", text, func(line string) (GenericLine, bool) {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "INCLUDES") || len(stripped) <= 3 {
			return GenericLine{}, false
		}
		return GenericLine{RawLine: stripped}, true
	})
}
