package scene

import "strconv"

// textParser walks the ASCII dialect's `Identifier: prop, prop { ... }`
// grammar. It produces the same Element tree shape as the binary
// tokenizer (spec requires both dialects collapse to one logical tree).
type textParser struct {
	buf []byte
	pos int
}

func tokenizeText(buf []byte) (root *Element, err error) {
	defer recoverBounds(&err)

	tp := &textParser{buf: buf}
	root = &Element{ID: []byte("(root)")}
	for {
		tp.skipTrivia()
		if tp.atEnd() {
			break
		}
		el, perr := tp.readElement()
		if perr != nil {
			return nil, perr
		}
		root.addChild(el)
	}
	return root, nil
}

func (tp *textParser) atEnd() bool { return tp.pos >= len(tp.buf) }
func (tp *textParser) peek() byte  { return tp.buf[tp.pos] }

// skipTrivia skips whitespace and `; ...` line comments.
func (tp *textParser) skipTrivia() {
	for !tp.atEnd() {
		c := tp.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			tp.pos++
		case c == ';':
			for !tp.atEnd() && tp.peek() != '\n' {
				tp.pos++
			}
		default:
			return
		}
	}
}

func isTextDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (tp *textParser) readIdentifier() string {
	start := tp.pos
	for !tp.atEnd() && isIdentChar(tp.peek()) {
		tp.pos++
	}
	return string(tp.buf[start:tp.pos])
}

func (tp *textParser) readElement() (*Element, error) {
	tp.skipTrivia()
	id := tp.readIdentifier()
	if id == "" {
		return nil, newErrorf(ErrFormat, "expected element identifier at offset %d", tp.pos)
	}
	tp.skipTrivia()
	if tp.atEnd() || tp.peek() != ':' {
		return nil, newErrorf(ErrFormat, "expected ':' after identifier %q", id)
	}
	tp.pos++ // consume ':'

	el := &Element{ID: []byte(id)}

	for {
		tp.skipTrivia()
		if tp.atEnd() || tp.peek() == '{' {
			break
		}
		prop, err := tp.readProperty()
		if err != nil {
			return nil, err
		}
		el.Properties = append(el.Properties, prop)
		tp.skipTrivia()
		if !tp.atEnd() && tp.peek() == ',' {
			tp.pos++
			continue
		}
		break
	}

	tp.skipTrivia()
	if !tp.atEnd() && tp.peek() == '{' {
		tp.pos++
		for {
			tp.skipTrivia()
			if tp.atEnd() {
				return nil, newErrorf(ErrFormat, "unterminated block for element %q", id)
			}
			if tp.peek() == '}' {
				tp.pos++
				break
			}
			child, err := tp.readElement()
			if err != nil {
				return nil, err
			}
			el.addChild(child)
		}
	}
	return el, nil
}

func (tp *textParser) readProperty() (*Property, error) {
	tp.skipTrivia()
	if tp.atEnd() {
		return nil, newErrorf(ErrFormat, "expected property value at end of input")
	}
	switch c := tp.peek(); {
	case c == '"':
		s := tp.readQuotedString()
		return &Property{Tag: TagString, scalarStr: s, raw: []byte(s)}, nil
	case c == '*':
		return tp.readInlineArray()
	case c == '-' || isTextDigit(c):
		return tp.readNumber()
	default:
		return tp.readBareToken()
	}
}

func (tp *textParser) readQuotedString() string {
	tp.pos++ // opening quote
	start := tp.pos
	for !tp.atEnd() && tp.peek() != '"' {
		tp.pos++
	}
	s := string(tp.buf[start:tp.pos])
	if !tp.atEnd() {
		tp.pos++ // closing quote
	}
	return s
}

func (tp *textParser) readNumber() (*Property, error) {
	start := tp.pos
	if tp.peek() == '-' {
		tp.pos++
	}
	for !tp.atEnd() && isTextDigit(tp.peek()) {
		tp.pos++
	}
	isFloat := false
	if !tp.atEnd() && tp.peek() == '.' {
		isFloat = true
		tp.pos++
		for !tp.atEnd() && isTextDigit(tp.peek()) {
			tp.pos++
		}
	}
	if !tp.atEnd() && (tp.peek() == 'e' || tp.peek() == 'E') {
		isFloat = true
		tp.pos++
		if !tp.atEnd() && (tp.peek() == '+' || tp.peek() == '-') {
			tp.pos++
		}
		for !tp.atEnd() && isTextDigit(tp.peek()) {
			tp.pos++
		}
	}
	text := string(tp.buf[start:tp.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newErrorf(ErrFormat, "parsing text number %q: %v", text, err)
		}
		return &Property{Tag: TagDouble, scalarFloat: v}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, newErrorf(ErrFormat, "parsing text number %q: %v", text, err)
	}
	return &Property{Tag: TagInt64, scalarInt: v}, nil
}

// readInlineArray decodes a `*N: { a,b,c }` inline array. The declared
// element count N is read and discarded: the actual parsed element
// count (per spec, counted as non-whitespace comma-separated runs) is
// authoritative.
func (tp *textParser) readInlineArray() (*Property, error) {
	tp.pos++ // consume '*'
	for !tp.atEnd() && isTextDigit(tp.peek()) {
		tp.pos++
	}
	tp.skipTrivia()
	if tp.atEnd() || tp.peek() != ':' {
		return nil, newErrorf(ErrFormat, "expected ':' in inline array header at offset %d", tp.pos)
	}
	tp.pos++
	tp.skipTrivia()
	if tp.atEnd() || tp.peek() != '{' {
		return nil, newErrorf(ErrFormat, "expected '{' opening inline array body at offset %d", tp.pos)
	}
	tp.pos++
	bodyStart := tp.pos
	depth := 1
	for !tp.atEnd() && depth > 0 {
		switch tp.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				goto closed
			}
		}
		tp.pos++
	}
closed:
	body := string(tp.buf[bodyStart:tp.pos])
	if !tp.atEnd() {
		tp.pos++ // consume closing '}'
	}

	isDouble, ints, doubles, err := parseTextNumberArray(body)
	if err != nil {
		return nil, err
	}
	if isDouble {
		return &Property{Tag: TagDoubleArray, arrayDouble: doubles, arrayCount: len(doubles)}, nil
	}
	return &Property{Tag: TagInt64Array, arrayInt64: ints, arrayCount: len(ints)}, nil
}

// readBareToken handles unquoted scalar tokens: the single-character
// boolean markers `T`/`Y`, and any other bare identifier, which is
// treated as a string (this covers enum-like bare words that appear in
// some exporters' property lists).
func (tp *textParser) readBareToken() (*Property, error) {
	start := tp.pos
	for !tp.atEnd() {
		c := tp.peek()
		if c == ',' || c == '{' || c == '}' || c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		tp.pos++
	}
	text := string(tp.buf[start:tp.pos])
	if text == "T" || text == "Y" {
		return &Property{Tag: TagBool, scalarBool: true}, nil
	}
	return &Property{Tag: TagString, scalarStr: text, raw: []byte(text)}, nil
}
