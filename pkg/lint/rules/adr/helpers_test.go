package adr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
	"github.com/yaklabco/mdbooklint/pkg/lint"
)

func newDoc(t *testing.T, path, content string) *document.Document {
	t.Helper()

	doc, err := document.New(content, path)
	require.NoError(t, err)
	return doc
}

func check(t *testing.T, rule lint.ASTRule, path, content string) []string {
	t.Helper()

	doc := newDoc(t, path, content)
	violations, err := rule.CheckAST(doc, doc.ParseAST())
	require.NoError(t, err)

	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Message)
	}
	return out
}

func parseConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

const nygardRecord = `# 1. Record architecture decisions

Date: 2024-03-01

## Status

Accepted

## Context

We need to record decisions.

## Decision

We will use ADRs.

## Consequences

See Michael Nygard's article.
`

const madrRecord = `---
status: accepted
date: 2024-03-01
---
# Use Markdown Architectural Decision Records

## Context and Problem Statement

Which format?

## Considered Options

* MADR
* Nygard

## Decision Outcome

Chosen option: MADR.
`
