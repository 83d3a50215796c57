package lint

// MessageID identifies the kind of a violation
type MessageID string

const (
	ImportGroupsNotSorted MessageID = "importGroupsNotSorted"
	UnexpectedBlankLine   MessageID = "unexpectedBlankLine"
	MissingBlankLine      MessageID = "missingBlankLine"
	SeparateTypeImport    MessageID = "separateTypeImport"
	MixedImport           MessageID = "mixedImport"
	ImportNamesNotSorted  MessageID = "importNamesNotSorted"
)

var messages = map[MessageID]string{
	ImportGroupsNotSorted: "Import groups are not sorted correctly",
	UnexpectedBlankLine:   "Unexpected blank line within import group",
	MissingBlankLine:      "Missing blank line between import groups",
	SeparateTypeImport:    "Use `import type` instead of inline type imports for better code readability",
	MixedImport:           "Do not mix type and value imports in the same import statement",
	ImportNamesNotSorted:  "Import names are not sorted correctly",
}

// Message returns the human readable text of the message
func (id MessageID) Message() string {
	if msg, ok := messages[id]; ok {
		return msg
	}
	return string(id)
}
