// Package construct holds the state machines for each grammar rule.
//
// Every construct is a tokenizer.StateFn entry point plus the continuations
// it returns. Constructs that end in Ok or Nok leave the tokenizer's
// scratch register at its zero value; partial constructs (label,
// destination, title) read their token roles from the register and leave
// unbinding them to the caller.
package construct

import "github.com/zjrosen/micromd/internal/tokenizer"

func isSpaceOrTab(b int) bool {
	return b == ' ' || b == '\t'
}

func isSpaceOrTabOrEOL(b int) bool {
	return b == ' ' || b == '\t' || b == tokenizer.LineEnding
}

func isASCIIPunctuation(b int) bool {
	return (b >= '!' && b <= '/') || (b >= ':' && b <= '@') || (b >= '[' && b <= '`') || (b >= '{' && b <= '~')
}

func isASCIIControl(b int) bool {
	return (b >= 0 && b <= 0x1F) || b == 0x7F
}

func isASCIIAlphanumeric(b int) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIDigit(b int) bool {
	return b >= '0' && b <= '9'
}

func isASCIIHexDigit(b int) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
