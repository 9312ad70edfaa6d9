// Package template scans display templates into their placeholder segments.
//
// A template is the content of a directive's string literal. It contains
// literal text, `{ident}` / `{ident:spec}` named placeholders, `{N}` /
// `{N:spec}` explicit positional placeholders, `{}` / `{:spec}` implicit
// positional placeholders, and `{{` / `}}` brace escapes. The format-spec
// suffix after ':' is opaque pass-through text; the scanner records it but
// never interprets it.
package template

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"displaystr/internal/diag"
	"displaystr/internal/source"
)

// SegmentKind classifies one scanned segment.
type SegmentKind uint8

const (
	// SegLiteral is literal text, escapes included verbatim.
	SegLiteral SegmentKind = iota
	// SegNamed is `{ident}` or `{ident:spec}`.
	SegNamed
	// SegPositional is `{N}` or `{N:spec}`.
	SegPositional
	// SegImplicit is `{}` or `{:spec}`, consuming the next position
	// left-to-right.
	SegImplicit
)

// Segment is one piece of a scanned template.
type Segment struct {
	Kind SegmentKind
	// Text is the literal text for SegLiteral, the identifier for SegNamed.
	Text string
	// Index is the explicit index for SegPositional.
	Index int
	// Spec is the format-spec suffix without the leading ':', "" if absent.
	Spec string
	// Span covers the placeholder (braces included) or the literal run,
	// in file coordinates.
	Span source.Span
}

// Template is a scanned template string.
type Template struct {
	Segments []Segment
}

// Placeholders returns only the placeholder segments.
func (t Template) Placeholders() []Segment {
	out := make([]Segment, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if seg.Kind != SegLiteral {
			out = append(out, seg)
		}
	}
	return out
}

// HasImplicit reports whether the template uses `{}` placeholders.
func (t Template) HasImplicit() bool {
	for _, seg := range t.Segments {
		if seg.Kind == SegImplicit {
			return true
		}
	}
	return false
}

// HasExplicitIndex reports whether the template uses `{N}` placeholders.
func (t Template) HasExplicitIndex() bool {
	for _, seg := range t.Segments {
		if seg.Kind == SegPositional {
			return true
		}
	}
	return false
}

// Parse scans content, reporting defects against contentSpan (the span of
// the literal's text, quotes excluded). Scanning continues past recoverable
// defects so one pass reports every bad placeholder; ok is false if any
// defect was reported.
func Parse(content string, contentSpan source.Span, rep diag.Reporter) (Template, bool) {
	var tpl Template
	ok := true

	report := func(code diag.Code, start, end int, msg string) {
		ok = false
		if rep == nil {
			return
		}
		sp := source.Span{
			File:  contentSpan.File,
			Start: contentSpan.Start + uint32(start),
			End:   contentSpan.Start + uint32(end),
		}
		rep.Report(code, diag.SevError, sp, msg, nil)
	}

	litStart := 0
	var lit []byte
	flushLit := func(end int) {
		if len(lit) == 0 {
			return
		}
		tpl.Segments = append(tpl.Segments, Segment{
			Kind: SegLiteral,
			Text: string(lit),
			Span: source.Span{
				File:  contentSpan.File,
				Start: contentSpan.Start + uint32(litStart),
				End:   contentSpan.Start + uint32(end),
			},
		})
		lit = lit[:0]
	}

	for i := 0; i < len(content); {
		ch := content[i]
		if ch == '{' {
			if i+1 < len(content) && content[i+1] == '{' {
				if len(lit) == 0 {
					litStart = i
				}
				lit = append(lit, '{', '{')
				i += 2
				continue
			}
			flushLit(i)
			seg, next, perr := scanPlaceholder(content, i)
			if perr != nil {
				report(perr.code, perr.start, perr.end, perr.msg)
				i = next
				continue
			}
			seg.Span = source.Span{
				File:  contentSpan.File,
				Start: contentSpan.Start + uint32(i),
				End:   contentSpan.Start + uint32(next),
			}
			tpl.Segments = append(tpl.Segments, seg)
			i = next
			continue
		}
		if ch == '}' {
			if i+1 < len(content) && content[i+1] == '}' {
				if len(lit) == 0 {
					litStart = i
				}
				lit = append(lit, '}', '}')
				i += 2
				continue
			}
			flushLit(i)
			report(diag.TplUnmatchedBrace, i, i+1, "unmatched '}' in template; use '}}' for a literal brace")
			i++
			continue
		}
		if len(lit) == 0 {
			litStart = i
		}
		lit = append(lit, ch)
		i++
	}
	flushLit(len(content))

	return tpl, ok
}

type parseError struct {
	code       diag.Code
	start, end int
	msg        string
}

// scanPlaceholder scans one `{...}` starting at the '{' at position i.
// It returns the segment, the position just past the closing '}', and a
// non-nil error for malformed placeholders. On error next still points
// past the placeholder (or at the offending byte) so scanning can resume.
func scanPlaceholder(content string, i int) (Segment, int, *parseError) {
	j := i + 1 // past '{'

	// Body runs to ':' or '}'.
	body := j
	for body < len(content) && content[body] != ':' && content[body] != '}' && content[body] != '{' {
		body++
	}
	if body >= len(content) || content[body] == '{' {
		return Segment{}, body, &parseError{
			code:  diag.TplUnmatchedBrace,
			start: i,
			end:   min(body, len(content)),
			msg:   "unclosed '{' in template; use '{{' for a literal brace",
		}
	}

	name := content[j:body]

	// Opaque format-spec suffix.
	spec := ""
	next := body
	if content[next] == ':' {
		specStart := next + 1
		for next < len(content) && content[next] != '}' {
			if content[next] == '{' {
				return Segment{}, next, &parseError{
					code:  diag.TplUnmatchedBrace,
					start: i,
					end:   next,
					msg:   "unclosed '{' in template; use '{{' for a literal brace",
				}
			}
			next++
		}
		if next >= len(content) {
			return Segment{}, next, &parseError{
				code:  diag.TplUnmatchedBrace,
				start: i,
				end:   len(content),
				msg:   "unclosed '{' in template; use '{{' for a literal brace",
			}
		}
		spec = content[specStart:next]
	}
	next++ // past '}'

	switch {
	case name == "":
		return Segment{Kind: SegImplicit, Spec: spec}, next, nil
	case isIndex(name):
		idx, err := strconv.Atoi(name)
		if err != nil {
			return Segment{}, next, &parseError{
				code:  diag.TplBadPlaceholder,
				start: i,
				end:   next,
				msg:   "positional index too large: {" + name + "}",
			}
		}
		return Segment{Kind: SegPositional, Index: idx, Spec: spec}, next, nil
	case isIdent(name):
		return Segment{Kind: SegNamed, Text: norm.NFC.String(name), Spec: spec}, next, nil
	default:
		return Segment{}, next, &parseError{
			code:  diag.TplBadPlaceholder,
			start: i,
			end:   next,
			msg:   "malformed placeholder {" + name + "}",
		}
	}
}

func isIndex(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isIdent(s string) bool {
	for i, w := 0, 0; i < len(s); i += w {
		r, sz := utf8.DecodeRuneInString(s[i:])
		w = sz
		if r == utf8.RuneError && sz <= 1 {
			return false
		}
		if i == 0 {
			if r != '_' && !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
