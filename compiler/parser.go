package compiler

import (
	"strings"
)

// ParserOptions configures delimiters and error reporting, per spec
// §4.1.1 ("a template string and parser options").
type ParserOptions struct {
	DelimiterOpen  string // default "{{"
	DelimiterClose string // default "}}"
	OnError        ErrorHandler
	IsVoidTag      func(tag string) bool
	IsNativeTag    func(tag string) bool // tags that are never classified as ELEMENT->COMPONENT
	IsBuiltIn      func(tag string) bool // teleport/keep-alive/suspense names
}

func defaultParserOptions() ParserOptions {
	return ParserOptions{
		DelimiterOpen:  "{{",
		DelimiterClose: "}}",
		IsVoidTag:      defaultVoidTag,
		IsNativeTag:    defaultNativeTag,
		IsBuiltIn:      defaultBuiltInTag,
	}
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func defaultVoidTag(tag string) bool { return voidTags[strings.ToLower(tag)] }

var builtInTags = map[string]bool{
	"teleport": true, "keep-alive": true, "keepalive": true, "suspense": true, "transition": true,
}

func defaultBuiltInTag(tag string) bool { return builtInTags[strings.ToLower(tag)] }

func defaultNativeTag(tag string) bool {
	// Anything lower-case and not a recognized built-in is treated as a
	// native host tag; anything else may be a user component per the
	// classification rule below.
	return tag == strings.ToLower(tag)
}

// Parser implements spec §4.1.1 over a Lexer.
type Parser struct {
	lex     *Lexer
	opts    ParserOptions
	inPre   bool
}

func NewParser(src string, opts ParserOptions) *Parser {
	if opts.DelimiterOpen == "" {
		opts.DelimiterOpen = "{{"
	}
	if opts.DelimiterClose == "" {
		opts.DelimiterClose = "}}"
	}
	if opts.IsVoidTag == nil {
		opts.IsVoidTag = defaultVoidTag
	}
	if opts.IsNativeTag == nil {
		opts.IsNativeTag = defaultNativeTag
	}
	if opts.IsBuiltIn == nil {
		opts.IsBuiltIn = defaultBuiltInTag
	}
	return &Parser{lex: NewLexer(src), opts: opts}
}

// Parse produces the root AST node with Children, per spec §4.1.1.
func Parse(src string, opts ...ParserOptions) *Node {
	o := defaultParserOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.DelimiterOpen == "" {
			o.DelimiterOpen = "{{"
		}
		if o.DelimiterClose == "" {
			o.DelimiterClose = "}}"
		}
		if o.IsVoidTag == nil {
			o.IsVoidTag = defaultVoidTag
		}
		if o.IsNativeTag == nil {
			o.IsNativeTag = defaultNativeTag
		}
		if o.IsBuiltIn == nil {
			o.IsBuiltIn = defaultBuiltInTag
		}
	}
	p := &Parser{lex: NewLexer(src), opts: o}
	root := &Node{Type: NodeRoot}
	root.Children = p.parseChildren(nil)
	applyWhitespacePolicy(root.Children, false)
	root.Children = mergeText(root.Children)
	return root
}

func (p *Parser) err(code ErrorCode, msg string) {
	if p.opts.OnError == nil {
		return
	}
	pos := p.lex.Pos()
	p.opts.OnError(&CompileError{Code: code, Loc: SourceRange{Start: pos, End: pos}, Message: msg})
}

// parseChildren parses nodes until EOF or until the upcoming source is a
// closing tag for one of the ancestor tags in stack.
func (p *Parser) parseChildren(stack []string) []*Node {
	var nodes []*Node
	for !p.lex.Eof() {
		if p.isClosingAncestor(stack) {
			break
		}
		n := p.parseOne(stack)
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (p *Parser) isClosingAncestor(stack []string) bool {
	if !p.lex.StartsWith("</") {
		return false
	}
	rest := p.lex.PeekString(64)[2:]
	for _, tag := range stack {
		if strings.HasPrefix(strings.ToLower(rest), strings.ToLower(tag)) {
			return true
		}
	}
	return len(stack) == 0 // a stray end-tag at root also terminates
}

func (p *Parser) parseOne(stack []string) *Node {
	start := p.lex.Pos()
	switch {
	case p.lex.StartsWith("<!--"):
		return p.parseComment(start)
	case p.lex.StartsWithFold("<!doctype"):
		return p.parseBogusComment(start, "<!")
	case p.lex.StartsWith("<![CDATA["):
		return p.parseCDATA(start)
	case p.lex.StartsWith("</"):
		// Stray end tag not matching any ancestor: diagnostic, skip it.
		p.err(ErrXInvalidEndTag, "stray end tag")
		p.lex.ReadUntil(">")
		if !p.lex.Eof() {
			p.lex.Advance()
		}
		return nil
	case p.lex.Peek() == '<' && isNameStart(p.peekAt(1)):
		return p.parseElement(stack)
	case p.lex.Peek() == '<' && p.peekAt(1) == 0:
		p.err(ErrEOFBeforeTagName, "EOF before tag name")
		p.lex.Advance()
		return nil
	case !p.inPre && p.lex.StartsWith(p.opts.DelimiterOpen) && p.lex.mode != TextModeRawText && p.lex.mode != TextModeCData:
		return p.parseInterpolation(start)
	default:
		return p.parseText(start)
	}
}

func (p *Parser) peekAt(n int) rune {
	s := p.lex.PeekString(n + 4)
	runes := []rune(s)
	if n >= len(runes) {
		return 0
	}
	return runes[n]
}

func (p *Parser) parseComment(start Position) *Node {
	p.lex.AdvanceRaw("<!--")
	if p.lex.StartsWith(">") {
		p.err(ErrAbruptClosingOfEmptyComment, "abrupt closing of empty comment")
		p.lex.Advance()
		return &Node{Type: NodeComment, Loc: p.loc(start)}
	}
	content, eof := p.lex.ReadUntil("-->")
	if eof {
		p.err(ErrEOFInComment, "eof in comment")
	} else {
		p.lex.AdvanceRaw("-->")
	}
	if strings.Contains(content, "<!--") {
		p.err(ErrNestedComment, "nested comment")
	}
	return &Node{Type: NodeComment, Content: content, Loc: p.loc(start)}
}

func (p *Parser) parseBogusComment(start Position, open string) *Node {
	p.lex.AdvanceRaw(open)
	content, _ := p.lex.ReadUntil(">")
	if !p.lex.Eof() {
		p.lex.Advance()
	}
	return &Node{Type: NodeComment, Content: content, Loc: p.loc(start)}
}

func (p *Parser) parseCDATA(start Position) *Node {
	p.lex.AdvanceRaw("<![CDATA[")
	if p.lex.mode == TextModeData {
		p.err(ErrCDATAInHTMLContent, "CDATA outside foreign content")
	}
	content, eof := p.lex.ReadUntil("]]>")
	if eof {
		p.err(ErrEOFInCDATA, "eof in CDATA")
	} else {
		p.lex.AdvanceRaw("]]>")
	}
	return &Node{Type: NodeText, Content: content, Loc: p.loc(start)}
}

func (p *Parser) parseInterpolation(start Position) *Node {
	p.lex.AdvanceRaw(p.opts.DelimiterOpen)
	content, eof := p.lex.ReadUntil(p.opts.DelimiterClose)
	if eof {
		p.err(ErrXMissingInterpolationEnd, "missing interpolation end")
	} else {
		p.lex.AdvanceRaw(p.opts.DelimiterClose)
	}
	return &Node{Type: NodeInterpolation, Expr: strings.TrimSpace(content), Loc: p.loc(start)}
}

func (p *Parser) parseText(start Position) *Node {
	var sb strings.Builder
	for !p.lex.Eof() {
		if p.lex.Peek() == '<' {
			break
		}
		if !p.inPre && p.lex.mode != TextModeRawText && p.lex.mode != TextModeCData && p.lex.StartsWith(p.opts.DelimiterOpen) {
			break
		}
		sb.WriteRune(p.lex.Advance())
	}
	return &Node{Type: NodeText, Content: decodeEntities(sb.String()), Loc: p.loc(start)}
}

func (p *Parser) loc(start Position) SourceRange {
	return SourceRange{Start: start, End: p.lex.Pos()}
}

// parseElement parses `<tag ...>children</tag>` or a self-closing/void
// element, applying v-pre rewind-and-reparse when the attribute set
// contains it (spec §4.1.1).
func (p *Parser) parseElement(stack []string) *Node {
	start := p.lex.Pos()
	attrStart := p.lex.pos
	p.lex.Advance() // '<'
	tag := p.readName()

	attrs, selfClose := p.parseAttributes()

	hasPre := false
	for _, a := range attrs {
		if a.IsDirective && a.Name == "pre" {
			hasPre = true
		}
	}
	if hasPre && !p.inPre {
		// Rewind and re-parse this element's attributes with directive
		// interpretation disabled, per spec's v-pre rewind instruction.
		p.lex.pos = attrStart
		p.lex.Advance()
		p.readName()
		attrs, selfClose = p.parseAttributesRaw()
		p.inPre = true
		defer func() { p.inPre = false }()
	}

	n := &Node{Type: NodeElement, Tag: tag, Attrs: attrs, IsSelfClose: selfClose, IsPre: p.inPre}
	n.ElementType = classifyElement(tag, attrs, p.opts)

	if selfClose || p.opts.IsVoidTag(tag) {
		n.Loc = p.loc(start)
		return n
	}

	prevMode := p.lex.mode
	switch strings.ToLower(tag) {
	case "script", "style", "textarea", "title":
		if strings.ToLower(tag) == "textarea" || strings.ToLower(tag) == "title" {
			p.lex.SetMode(TextModeRCData)
		} else {
			p.lex.SetMode(TextModeRawText)
		}
	}

	children := p.parseChildren(append(stack, tag))
	p.lex.SetMode(prevMode)

	if p.lex.StartsWith("</") {
		p.lex.AdvanceRaw("</")
		p.readName()
		p.skipWhitespace()
		if p.lex.Peek() == '>' {
			p.lex.Advance()
		} else {
			p.err(ErrXInvalidEndTag, "malformed end tag")
			p.lex.ReadUntil(">")
			if !p.lex.Eof() {
				p.lex.Advance()
			}
		}
	} else if p.lex.Eof() {
		p.err(ErrMissingEndTag, "missing end tag for <"+tag+">")
	}

	isPreTag := strings.ToLower(tag) == "pre"
	applyWhitespacePolicy(children, isPreTag)
	children = mergeText(children)
	n.Children = children
	n.Loc = p.loc(start)
	return n
}

func (p *Parser) readName() string {
	var sb strings.Builder
	for isNameChar(p.lex.Peek()) {
		sb.WriteRune(p.lex.Advance())
	}
	return sb.String()
}

func (p *Parser) skipWhitespace() {
	for IsWhitespace(p.lex.Peek()) {
		p.lex.Advance()
	}
}

// parseAttributes parses the attribute list up to the closing '>' or
// self-closing "/>", with directive interpretation enabled.
func (p *Parser) parseAttributes() ([]*Attribute, bool) {
	return p.parseAttributesImpl(true)
}

// parseAttributesRaw parses the same list but with directive attribute
// names treated as plain attribute names (v-pre semantics).
func (p *Parser) parseAttributesRaw() ([]*Attribute, bool) {
	return p.parseAttributesImpl(false)
}

func (p *Parser) parseAttributesImpl(interpretDirectives bool) ([]*Attribute, bool) {
	var attrs []*Attribute
	seen := map[string]bool{}
	for {
		p.skipWhitespace()
		if p.lex.Eof() {
			p.err(ErrEOFInTag, "eof in tag")
			return attrs, false
		}
		if p.lex.Peek() == '>' {
			p.lex.Advance()
			return attrs, false
		}
		if p.lex.StartsWith("/>") {
			p.lex.AdvanceRaw("/>")
			return attrs, true
		}
		if p.lex.Peek() == '/' {
			p.lex.Advance()
			continue
		}
		start := p.lex.Pos()
		name := p.readAttrName()
		if name == "" {
			p.err(ErrUnexpectedCharacterInAttributeName, "unexpected character in attribute name")
			p.lex.Advance()
			continue
		}
		p.skipWhitespace()
		value := ""
		hasValue := false
		if p.lex.Peek() == '=' {
			p.lex.Advance()
			p.skipWhitespace()
			value = p.readAttrValue()
			hasValue = true
		}
		_ = hasValue
		a := &Attribute{Name: name, Value: value, Loc: SourceRange{Start: start, End: p.lex.Pos()}}
		if interpretDirectives {
			classifyDirectiveAttr(a)
		}
		if seen[a.Name] {
			p.err(ErrDuplicateAttribute, "duplicate attribute: "+a.Name)
		}
		seen[a.Name] = true
		attrs = append(attrs, a)
	}
}

func (p *Parser) readAttrName() string {
	var sb strings.Builder
	for {
		r := p.lex.Peek()
		if r == 0 || IsWhitespace(r) || r == '=' || r == '>' || (r == '/' && p.peekAt(1) == '>') {
			break
		}
		sb.WriteRune(p.lex.Advance())
	}
	return sb.String()
}

func (p *Parser) readAttrValue() string {
	q := p.lex.Peek()
	if q == '"' || q == '\'' {
		p.lex.Advance()
		prevMode := p.lex.mode
		p.lex.SetMode(TextModeAttributeValue)
		val, eof := p.lex.ReadUntil(string(q))
		p.lex.SetMode(prevMode)
		if eof {
			p.err(ErrMissingAttributeValue, "unterminated attribute value")
		} else {
			p.lex.Advance()
		}
		return decodeEntities(val)
	}
	var sb strings.Builder
	for {
		r := p.lex.Peek()
		if r == 0 || IsWhitespace(r) || r == '>' {
			break
		}
		sb.WriteRune(p.lex.Advance())
	}
	return decodeEntities(sb.String())
}

// classifyDirectiveAttr detects directive-shaped attribute names
// (`^(v-[a-z0-9-]+|:|@|#)`) and splits out argument/modifiers, per spec
// §4.1.1.
func classifyDirectiveAttr(a *Attribute) {
	name := a.Name
	switch {
	case strings.HasPrefix(name, "v-"):
		rest := name[2:]
		a.IsDirective = true
		parseDirectiveNameArgMods(rest, a)
	case strings.HasPrefix(name, ":"):
		a.IsDirective = true
		a.Name = "bind"
		parseDirectiveArgMods(name[1:], a)
	case strings.HasPrefix(name, "@"):
		a.IsDirective = true
		a.Name = "on"
		parseDirectiveArgMods(name[1:], a)
	case strings.HasPrefix(name, "#"):
		a.IsDirective = true
		a.Name = "slot"
		parseDirectiveArgMods(name[1:], a)
	}
}

func parseDirectiveNameArgMods(rest string, a *Attribute) {
	parts := strings.Split(rest, ":")
	nameAndMods := strings.Split(parts[0], ".")
	a.Name = nameAndMods[0]
	a.Modifiers = nameAndMods[1:]
	if len(parts) > 1 {
		parseDirectiveArgMods(strings.Join(parts[1:], ":"), a)
	}
}

func parseDirectiveArgMods(rest string, a *Attribute) {
	if strings.HasPrefix(rest, "[") && strings.Contains(rest, "]") {
		end := strings.Index(rest, "]")
		a.Arg = rest[1:end]
		a.ArgIsExp = true
		rest = rest[end+1:]
		rest = strings.TrimPrefix(rest, ".")
		if rest != "" {
			a.Modifiers = append(a.Modifiers, strings.Split(rest, ".")...)
		}
		return
	}
	argAndMods := strings.Split(rest, ".")
	if argAndMods[0] != "" {
		a.Arg = argAndMods[0]
	}
	a.Modifiers = append(a.Modifiers, argAndMods[1:]...)
}

// classifyElement implements spec §4.1.1's classification rule order.
func classifyElement(tag string, attrs []*Attribute, opts ParserOptions) ElementType {
	for _, a := range attrs {
		if (a.IsDirective && a.Name == "is") || (a.IsDirective && a.Name == "bind" && a.Arg == "is") {
			return ElementComponent
		}
	}
	if opts.IsBuiltIn(tag) {
		return ElementComponent
	}
	lower := strings.ToLower(tag)
	if lower == "slot" {
		return ElementSlot
	}
	if lower == "template" {
		for _, a := range attrs {
			if a.IsDirective && (a.Name == "if" || a.Name == "else" || a.Name == "else-if" || a.Name == "for" || a.Name == "slot") {
				return ElementTemplate
			}
		}
		return ElementPlain
	}
	if tag == "component" {
		return ElementComponent
	}
	if !opts.IsNativeTag(tag) || (len(tag) > 0 && tag[0] >= 'A' && tag[0] <= 'Z') {
		return ElementComponent
	}
	return ElementPlain
}

func decodeEntities(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", "\"", "&apos;", "'", "&nbsp;", " ",
	)
	return replacer.Replace(s)
}

// applyWhitespacePolicy mutates children in place, per spec §4.1.1's
// whitespace rules, dropping/collapsing runs of whitespace-only text.
func applyWhitespacePolicy(children []*Node, inPreSubtree bool) {
	if inPreSubtree {
		if len(children) > 0 && children[0].Type == NodeText {
			children[0].Content = strings.TrimPrefix(children[0].Content, "\n")
		}
		return
	}
	for i, n := range children {
		if n.Type != NodeText {
			continue
		}
		if !isWhitespaceOnly(n.Content) {
			// Mixed content: condense internal whitespace runs (including
			// newlines) to a single space, per spec §8.3 boundary scenario 1
			// ("  a  \n  b  " -> "a b"), then trim the edges that abut the
			// parent tag boundary rather than a sibling.
			n.Content = condenseWhitespace(n.Content)
			if i == 0 {
				n.Content = strings.TrimPrefix(n.Content, " ")
			}
			if i == len(children)-1 {
				n.Content = strings.TrimSuffix(n.Content, " ")
			}
			continue
		}
		first := i == 0
		last := i == len(children)-1
		neighborIsComment := (i > 0 && children[i-1].Type == NodeComment) ||
			(i < len(children)-1 && children[i+1].Type == NodeComment)
		betweenElementsWithNewline := strings.Contains(n.Content, "\n") &&
			i > 0 && i < len(children)-1 &&
			children[i-1].Type == NodeElement && children[i+1].Type == NodeElement
		if first || last || neighborIsComment || betweenElementsWithNewline {
			n.Content = ""
		} else {
			n.Content = " "
		}
	}
}

// condenseWhitespace collapses every run of whitespace runes to a single
// space, leaving non-whitespace content untouched.
func condenseWhitespace(s string) string {
	var sb strings.Builder
	inRun := false
	for _, r := range s {
		if IsWhitespace(r) {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		if !IsWhitespace(r) {
			return false
		}
	}
	return true
}

// mergeText merges adjacent text nodes (after whitespace collapse removed
// some to "") and drops empties, per spec's "text node merging".
func mergeText(children []*Node) []*Node {
	var out []*Node
	for _, n := range children {
		if n.Type == NodeText && n.Content == "" {
			continue
		}
		if n.Type == NodeText && len(out) > 0 && out[len(out)-1].Type == NodeText {
			prev := out[len(out)-1]
			prev.Content += n.Content
			prev.Loc.End = n.Loc.End
			continue
		}
		out = append(out, n)
	}
	return out
}
