package compiler

import "fmt"

// ErrorCode is a closed diagnostic code, split into parser codes (lexical/
// structural malformations, §6.4) and transform codes (semantic issues
// found while walking the AST). Grounded on the teacher's
// pkg/bubbly/errors.go / component_errors.go convention of small closed
// sentinel-code enums with a Position attached, generalized from
// component-lifecycle errors to compiler diagnostics.
type ErrorCode int

const (
	// Parser codes.
	ErrAbruptClosingOfEmptyComment ErrorCode = iota + 1
	ErrCDATAInHTMLContent
	ErrDuplicateAttribute
	ErrEndTagWithAttributes
	ErrEndTagWithTrailingSolidus
	ErrEOFBeforeTagName
	ErrEOFInCDATA
	ErrEOFInComment
	ErrEOFInScriptHTMLCommentLikeText
	ErrEOFInTag
	ErrIncorrectlyClosedComment
	ErrIncorrectlyOpenedComment
	ErrInvalidFirstCharacterOfTagName
	ErrMissingAttributeValue
	ErrMissingEndTagName
	ErrMissingWhitespaceBetweenAttributes
	ErrNestedComment
	ErrUnexpectedCharacterInAttributeName
	ErrUnexpectedCharacterInUnquotedAttributeValue
	ErrUnexpectedEqualsSignBeforeAttributeName
	ErrUnexpectedNullCharacter
	ErrUnexpectedQuestionMarkInsteadOfTagName
	ErrUnexpectedSolidusInTag
	ErrXSolidusInAttributeName
	ErrMissingEndTag

	// Transform/codegen codes.
	ErrXInvalidEndTag
	ErrXMissingEndTag
	ErrXMissingInterpolationEnd
	ErrXMissingDirectiveName
	ErrXMissingDynamicDirectiveArgumentEnd
	ErrXVIfNoExpression
	ErrXVIfSameKey
	ErrXVElseNoAdjacentIf
	ErrXVForNoExpression
	ErrXVForMalformedExpression
	ErrXVForTemplateKeyPlacement
	ErrXVBindNoExpression
	ErrXVOnNoExpression
	ErrXVSlotNamedSlot
	ErrXVSlotMixedSlotUsage
	ErrXVSlotDuplicateSlotNames
	ErrXVSlotExtraneousDefaultSlotChildren
	ErrXVSlotMisplaced
	ErrXVModelNoExpression
	ErrXVModelMalformedExpression
	ErrXVModelOnScopeVariable
	ErrXInvalidExpression
	ErrXKeepAliveInvalidChildren
	ErrXPrefixIdentifiersUnsupported
	ErrXModuleModeUnsupported
	ErrXTransitionInvalidChildren
)

// Position is a source location attached to a diagnostic, matching the
// parser cursor's (line, column, offset) triple (spec §4.1.1).
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceRange covers a diagnostic's full extent, start inclusive.
type SourceRange struct {
	Start  Position
	End    Position
	Source string
}

// CompileError is the value passed to an onError hook (spec §6.4): a
// closed code, its source range, and an optional secondary message giving
// human-readable context.
type CompileError struct {
	Code    ErrorCode
	Loc     SourceRange
	Message string
}

func (e *CompileError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("compiler: code %d at %s: %s", e.Code, e.Loc.Start, e.Message)
	}
	return fmt.Sprintf("compiler: code %d at %s", e.Code, e.Loc.Start)
}

// ErrorHandler receives every diagnostic raised during parse/transform. The
// parser and transform never panic on a malformed construct themselves;
// they call this hook and recover, per spec's "never throws" mandate. With
// no handler set, diagnostics are dropped; CollectingHandler.Handle
// records them, and callers that want fail-fast test behavior should
// supply a handler that panics.
type ErrorHandler func(err *CompileError)

// CollectingHandler accumulates every diagnostic it receives, for callers
// (tests, dev tooling) that want to inspect the full diagnostic set after a
// parse/compile rather than react to each one individually.
type CollectingHandler struct {
	Errors []*CompileError
}

func NewCollectingHandler() *CollectingHandler { return &CollectingHandler{} }

func (h *CollectingHandler) Handle(err *CompileError) {
	h.Errors = append(h.Errors, err)
}
