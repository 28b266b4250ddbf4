// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/tcellhost/highlight.go
// Summary: Syntax colouring of the base text with Chroma lexers.
// Notes: Language detection runs through go-enry first since it classifies
//        by content as well as file name; Chroma's analysers are the fallback.

package tcellhost

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/theme"
)

// segment is a run of text sharing one highlight.
type segment struct {
	text string
	hl   host.Highlight
}

// detectLexer picks a lexer from the file name and content.
func detectLexer(name, text string) chroma.Lexer {
	if lang := enry.GetLanguage(name, []byte(text)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if name != "" {
		if l := lexers.Match(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// colorize splits lines into highlighted segments, one slice per line.
func colorize(name string, lines []string, t *theme.Table) [][]segment {
	out := make([][]segment, len(lines))
	if len(lines) == 0 {
		return out
	}
	text := strings.Join(lines, "\n") + "\n"
	lexer := chroma.Coalesce(detectLexer(name, text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		normal := t.Token(chroma.Text)
		for i, line := range lines {
			out[i] = []segment{{text: line, hl: normal}}
		}
		return out
	}

	row := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		hl := t.Token(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
			}
			if row >= len(out) {
				break
			}
			if part != "" {
				out[row] = append(out[row], segment{text: part, hl: hl})
			}
		}
	}
	return out
}
