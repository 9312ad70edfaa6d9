package token

// keywords are case-sensitive, lowercase only.
var keywords = map[string]Kind{
	"enum":  KwEnum,
	"pub":   KwPub,
	"where": KwWhere,
	"in":    KwIn,
	"as":    KwAs,
	"true":  KwTrue,
	"false": KwFalse,
}

// LookupKeyword returns the keyword kind for text, if text is a keyword.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
