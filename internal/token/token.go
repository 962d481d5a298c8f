// Package token defines the names attached to spans of Markdown input.
package token

// Name identifies the semantic role of a span in the event stream.
type Name int

const (
	// None is the zero Name. An unbound token role slot reads as None.
	None Name = iota

	// Generic
	Data
	LineEnding
	BlankLineEnding
	SpaceOrTab

	// Flow and content. ChunkContent is one content line, linked to the next.
	Content
	ChunkContent
	Paragraph

	// Definition (`[a]: b "c"`)
	Definition
	DefinitionMarker
	DefinitionLabel
	DefinitionLabelMarker
	DefinitionLabelString
	DefinitionDestination
	DefinitionDestinationLiteral
	DefinitionDestinationLiteralMarker
	DefinitionDestinationRaw
	DefinitionDestinationString
	DefinitionTitle
	DefinitionTitleMarker
	DefinitionTitleString

	// Character escape (`\*`)
	CharacterEscape
	CharacterEscapeMarker
	CharacterEscapeValue

	// Character reference (`&amp;`, `&#35;`, `&#x23;`)
	CharacterReference
	CharacterReferenceMarker
	CharacterReferenceMarkerNumeric
	CharacterReferenceMarkerHexadecimal
	CharacterReferenceMarkerSemi
	CharacterReferenceValue

	// Hard breaks
	HardBreakEscape
	HardBreakTrailing

	// Label starts and ends
	LabelLink
	LabelImage
	LabelImageMarker
	LabelMarker
	LabelEnd

	// Media groups, added by the label resolver
	Link
	Image
	Label
	LabelText

	// Resource (`(b "c")`)
	Resource
	ResourceMarker
	ResourceDestination
	ResourceDestinationLiteral
	ResourceDestinationLiteralMarker
	ResourceDestinationRaw
	ResourceDestinationString
	ResourceTitle
	ResourceTitleMarker
	ResourceTitleString

	// Reference (`[b]`, `[]`)
	Reference
	ReferenceMarker
	ReferenceString
)

var names = [...]string{
	None:                                "None",
	Data:                                "Data",
	LineEnding:                          "LineEnding",
	BlankLineEnding:                     "BlankLineEnding",
	SpaceOrTab:                          "SpaceOrTab",
	Content:                             "Content",
	ChunkContent:                        "ChunkContent",
	Paragraph:                           "Paragraph",
	Definition:                          "Definition",
	DefinitionMarker:                    "DefinitionMarker",
	DefinitionLabel:                     "DefinitionLabel",
	DefinitionLabelMarker:               "DefinitionLabelMarker",
	DefinitionLabelString:               "DefinitionLabelString",
	DefinitionDestination:               "DefinitionDestination",
	DefinitionDestinationLiteral:        "DefinitionDestinationLiteral",
	DefinitionDestinationLiteralMarker:  "DefinitionDestinationLiteralMarker",
	DefinitionDestinationRaw:            "DefinitionDestinationRaw",
	DefinitionDestinationString:         "DefinitionDestinationString",
	DefinitionTitle:                     "DefinitionTitle",
	DefinitionTitleMarker:               "DefinitionTitleMarker",
	DefinitionTitleString:               "DefinitionTitleString",
	CharacterEscape:                     "CharacterEscape",
	CharacterEscapeMarker:               "CharacterEscapeMarker",
	CharacterEscapeValue:                "CharacterEscapeValue",
	CharacterReference:                  "CharacterReference",
	CharacterReferenceMarker:            "CharacterReferenceMarker",
	CharacterReferenceMarkerNumeric:     "CharacterReferenceMarkerNumeric",
	CharacterReferenceMarkerHexadecimal: "CharacterReferenceMarkerHexadecimal",
	CharacterReferenceMarkerSemi:        "CharacterReferenceMarkerSemi",
	CharacterReferenceValue:             "CharacterReferenceValue",
	HardBreakEscape:                     "HardBreakEscape",
	HardBreakTrailing:                   "HardBreakTrailing",
	LabelLink:                           "LabelLink",
	LabelImage:                          "LabelImage",
	LabelImageMarker:                    "LabelImageMarker",
	LabelMarker:                         "LabelMarker",
	LabelEnd:                            "LabelEnd",
	Link:                                "Link",
	Image:                               "Image",
	Label:                               "Label",
	LabelText:                           "LabelText",
	Resource:                            "Resource",
	ResourceMarker:                      "ResourceMarker",
	ResourceDestination:                 "ResourceDestination",
	ResourceDestinationLiteral:          "ResourceDestinationLiteral",
	ResourceDestinationLiteralMarker:    "ResourceDestinationLiteralMarker",
	ResourceDestinationRaw:              "ResourceDestinationRaw",
	ResourceDestinationString:           "ResourceDestinationString",
	ResourceTitle:                       "ResourceTitle",
	ResourceTitleMarker:                 "ResourceTitleMarker",
	ResourceTitleString:                 "ResourceTitleString",
	Reference:                           "Reference",
	ReferenceMarker:                     "ReferenceMarker",
	ReferenceString:                     "ReferenceString",
}

// String returns the name as written in event dumps.
func (n Name) String() string {
	if n >= 0 && int(n) < len(names) && names[n] != "" {
		return names[n]
	}
	return "Unknown"
}

// IsLabelKind reports whether the name belongs to the label family: label
// starts, label ends and the groups the label resolver builds from them.
func (n Name) IsLabelKind() bool {
	switch n {
	case LabelLink, LabelImage, LabelImageMarker, LabelMarker, LabelEnd,
		Link, Image, Label, LabelText:
		return true
	}
	return false
}
