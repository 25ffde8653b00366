package scanner

import (
	"github.com/mna/ztoc/lang/source"
	"github.com/mna/ztoc/lang/token"
)

// ScanAll drains src into a token stream (including the trailing EOF),
// registering every line start with file so that later phases can resolve
// token offsets into file/line/column via file.Position.
//
// Line tracking is independent of the DFA: the tokenizer itself carries
// no notion of lines, so they are recorded here in one pass rather than
// threaded through every newline-handling state.
func ScanAll(src []byte, file *token.File) []Result {
	for i, b := range src {
		if b == '\n' {
			file.AddLine(i + 1)
		}
	}

	s := New(src)
	var out source.Seq[Result]
	for {
		r := s.Next()
		out.Append(r)
		if r.Tok == token.EOF {
			return out.Slice()
		}
	}
}

// PosOf converts a byte offset produced by Scan into a token.Pos relative
// to file.
func PosOf(file *token.File, offset uint32) token.Pos {
	return file.Pos(int(offset))
}
