// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edora-dev/edora/pkg/slug"
)

/*
TestFrom tests the full slugification pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Go Basics", "go-basics"},
		{"punctuation", "Go: Basics!", "go-basics"},
		{"accents", "Découvrir Gô", "decouvrir-go"},
		{"digits", "Go 101 (2026 Edition)", "go-101-2026-edition"},
		{"extra_whitespace", "  Advanced   Go  ", "advanced-go"},
		{"already_slug", "advanced-go-concurrency", "advanced-go-concurrency"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
