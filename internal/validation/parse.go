package validation

import (
	"bytes"
	jsonstd "encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// syntaxError is a parse failure located at a byte offset.
type syntaxError struct {
	offset int64
	msg    string
}

func (e *syntaxError) Error() string {
	return e.msg
}

// checkSyntax verifies content is a single well-formed JSON value.
// goccy is tried first; if it panics the stdlib decoder answers instead.
func checkSyntax(content []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = stdSyntax(content)
		}
	}()

	var v any
	if uerr := json.Unmarshal(content, &v); uerr != nil {
		var se *json.SyntaxError
		if errors.As(uerr, &se) {
			return &syntaxError{offset: se.Offset, msg: se.Error()}
		}
		// goccy reports a few malformed inputs with non-syntax errors; defer to stdlib for position.
		if serr := stdSyntax(content); serr != nil {
			return serr
		}
		return &syntaxError{msg: uerr.Error()}
	}
	return nil
}

func stdSyntax(content []byte) error {
	var v any
	if err := jsonstd.Unmarshal(content, &v); err != nil {
		var se *jsonstd.SyntaxError
		if errors.As(err, &se) {
			return &syntaxError{offset: se.Offset, msg: se.Error()}
		}
		return &syntaxError{msg: err.Error()}
	}
	return nil
}

// lineIndex maps byte offsets to 1-based line and column positions.
type lineIndex struct {
	content []byte
	starts  []int
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// position converts an offset to line and rune-based column.
func (li *lineIndex) position(offset int64) (line, col int) {
	off := int(offset)
	if off < 0 {
		off = 0
	}
	if off > len(li.content) {
		off = len(li.content)
	}
	lo, hi := 0, len(li.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := li.starts[lo]
	return lo + 1, utf8.RuneCount(li.content[start:off]) + 1
}

// nodeBuilder converts a JSON token stream into a positioned yaml.Node tree.
type nodeBuilder struct {
	dec     *jsonstd.Decoder
	content []byte
	index   *lineIndex
}

// parseDocument parses JSON content into a yaml.Node tree carrying line and column.
func parseDocument(content []byte) (*yaml.Node, error) {
	if !utf8.Valid(content) {
		return nil, &syntaxError{offset: int64(invalidUTF8Offset(content)), msg: "content is not valid UTF-8 text"}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &syntaxError{msg: "file is empty"}
	}
	if err := checkSyntax(content); err != nil {
		return nil, err
	}

	dec := jsonstd.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	b := &nodeBuilder{dec: dec, content: content, index: newLineIndex(content)}

	root, err := b.value()
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &syntaxError{offset: dec.InputOffset(), msg: "trailing characters after top-level value"}
	}
	return root, nil
}

// next returns the next token with the position of its first byte.
func (b *nodeBuilder) next() (jsonstd.Token, int, int, error) {
	start := b.tokenStart(b.dec.InputOffset())
	tok, err := b.dec.Token()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading token: %w", err)
	}
	line, col := b.index.position(start)
	return tok, line, col, nil
}

// tokenStart skips whitespace and separators the decoder has not consumed yet.
func (b *nodeBuilder) tokenStart(off int64) int64 {
	for int(off) < len(b.content) {
		switch b.content[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

func (b *nodeBuilder) value() (*yaml.Node, error) {
	tok, line, col, err := b.next()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case jsonstd.Delim:
		switch t {
		case '{':
			return b.object(line, col)
		case '[':
			return b.array(line, col)
		default:
			return nil, &syntaxError{offset: b.dec.InputOffset(), msg: fmt.Sprintf("unexpected delimiter %q", rune(t))}
		}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: t, Line: line, Column: col}, nil
	case jsonstd.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String(), Line: line, Column: col}, nil
	case bool:
		v := "false"
		if t {
			v = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v, Line: line, Column: col}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line, Column: col}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func (b *nodeBuilder) object(line, col int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle, Line: line, Column: col}
	for b.dec.More() {
		tok, kline, kcol, err := b.next()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &syntaxError{offset: b.dec.InputOffset(), msg: "object key must be a string"}
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: key, Line: kline, Column: kcol}
		val, err := b.value()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, val)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, fmt.Errorf("closing object: %w", err)
	}
	return node, nil
}

func (b *nodeBuilder) array(line, col int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Line: line, Column: col}
	for b.dec.More() {
		val, err := b.value()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, val)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, fmt.Errorf("closing array: %w", err)
	}
	return node, nil
}

func invalidUTF8Offset(content []byte) int {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(content)
}
