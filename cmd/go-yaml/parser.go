// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Parser wrapper for CLI YAML token/event processing. Provides a simplified
// interface for the command-line tool to access internal parser functionality.

package main

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yamlcore/internal/lowlevel"
)

// Parser provides access to the internal YAML Parser for CLI use
type Parser struct {
	parser        *lowlevel.YamlParser
	done          bool
	pendingTokens []*Token
	commentsHead  int
}

// NewParser creates a new YAML parser reading from the given reader for CLI use
func NewParser(reader io.Reader) (*Parser, error) {
	return &Parser{parser: lowlevel.New(reader)}, nil
}

// Next returns the next token in the YAML stream
func (p *Parser) Next() (*Token, error) {
	// Return pending tokens first
	if len(p.pendingTokens) > 0 {
		token := p.pendingTokens[0]
		p.pendingTokens = p.pendingTokens[1:]
		return token, nil
	}

	if p.done {
		return nil, nil
	}

	yamlToken, err := lowlevel.ScanToken(p.parser)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parser error: %w", err)
		}
		p.done = true
		return nil, nil
	}

	token := &Token{
		StartLine:   yamlToken.Start_mark.Line + 1,
		StartColumn: yamlToken.Start_mark.Column,
		EndLine:     yamlToken.End_mark.Line + 1,
		EndColumn:   yamlToken.End_mark.Column,
	}

	switch yamlToken.Type {
	case lowlevel.STREAM_START_TOKEN:
		token.Type = "STREAM-START"
	case lowlevel.STREAM_END_TOKEN:
		token.Type = "STREAM-END"
		p.done = true
	case lowlevel.DOCUMENT_START_TOKEN:
		token.Type = "DOCUMENT-START"
	case lowlevel.DOCUMENT_END_TOKEN:
		token.Type = "DOCUMENT-END"
	case lowlevel.BLOCK_SEQUENCE_START_TOKEN:
		token.Type = "BLOCK-SEQUENCE-START"
	case lowlevel.BLOCK_MAPPING_START_TOKEN:
		token.Type = "BLOCK-MAPPING-START"
	case lowlevel.BLOCK_END_TOKEN:
		token.Type = "BLOCK-END"
	case lowlevel.FLOW_SEQUENCE_START_TOKEN:
		token.Type = "FLOW-SEQUENCE-START"
	case lowlevel.FLOW_SEQUENCE_END_TOKEN:
		token.Type = "FLOW-SEQUENCE-END"
	case lowlevel.FLOW_MAPPING_START_TOKEN:
		token.Type = "FLOW-MAPPING-START"
	case lowlevel.FLOW_MAPPING_END_TOKEN:
		token.Type = "FLOW-MAPPING-END"
	case lowlevel.BLOCK_ENTRY_TOKEN:
		token.Type = "BLOCK-ENTRY"
	case lowlevel.FLOW_ENTRY_TOKEN:
		token.Type = "FLOW-ENTRY"
	case lowlevel.KEY_TOKEN:
		token.Type = "KEY"
	case lowlevel.VALUE_TOKEN:
		token.Type = "VALUE"
	case lowlevel.ALIAS_TOKEN:
		token.Type = "ALIAS"
		token.Value = string(yamlToken.Value)
	case lowlevel.ANCHOR_TOKEN:
		token.Type = "ANCHOR"
		token.Value = string(yamlToken.Value)
	case lowlevel.TAG_TOKEN:
		token.Type = "TAG"
		token.Value = string(yamlToken.Value)
	case lowlevel.SCALAR_TOKEN:
		token.Type = "SCALAR"
		token.Value = string(yamlToken.Value)
		token.Style = scalarStyleName(yamlToken.Style)
	case lowlevel.VERSION_DIRECTIVE_TOKEN:
		token.Type = "VERSION-DIRECTIVE"
	case lowlevel.TAG_DIRECTIVE_TOKEN:
		token.Type = "TAG-DIRECTIVE"
	default:
		token.Type = "UNKNOWN"
	}

	// Process comments that should be emitted before this token
	p.processComments(yamlToken, token)

	// Return first pending token if comments were queued, otherwise return the main token
	if len(p.pendingTokens) > 0 {
		// Add the main token to the end of pending tokens
		p.pendingTokens = append(p.pendingTokens, token)
		// Return the first pending token
		result := p.pendingTokens[0]
		p.pendingTokens = p.pendingTokens[1:]
		return result, nil
	}

	return token, nil
}

// scalarStyleName renders a low-level scalar style the way the CLI's
// formatted output expects it.
func scalarStyleName(s lowlevel.YamlScalarStyle) string {
	switch s {
	case lowlevel.DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case lowlevel.SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case lowlevel.LITERAL_SCALAR_STYLE:
		return "Literal"
	case lowlevel.FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return "Plain"
	}
}

// processComments extracts comments from the parser and creates COMMENT tokens
func (p *Parser) processComments(yamlToken *lowlevel.YamlToken, mainToken *Token) {
	comments := p.parser.Comments

	for p.commentsHead < len(comments) {
		comment := &comments[p.commentsHead]

		// Check if this comment should be emitted before the current token
		// Comments are associated with tokens based on their Token_mark
		if yamlToken.Start_mark.Index < comment.Token_mark.Index {
			// This comment is for a future token, stop processing
			break
		}

		// Create comment tokens for head, line, and foot comments
		p.appendCommentTokenIfNotEmpty(comment.Head, "head", comment)
		p.appendCommentTokenIfNotEmpty(comment.Line, "line", comment)
		p.appendCommentTokenIfNotEmpty(comment.Foot, "foot", comment)

		p.commentsHead++
	}
}

// appendCommentTokenIfNotEmpty creates and appends a comment token if the value is not empty.
func (p *Parser) appendCommentTokenIfNotEmpty(value []byte, commentType string, comment *lowlevel.YamlComment) {
	if len(value) > 0 {
		commentToken := &Token{
			Type:        "COMMENT",
			Value:       string(value),
			CommentType: commentType,
			StartLine:   comment.Start_mark.Line + 1,
			StartColumn: comment.Start_mark.Column + 1,
			EndLine:     comment.End_mark.Line + 1,
			EndColumn:   comment.End_mark.Column + 1,
		}
		p.pendingTokens = append(p.pendingTokens, commentToken)
	}
}

// Close releases the parser resources. The Go-native parser has no
// external resources to free; kept so call sites don't need special-casing.
func (p *Parser) Close() {}
