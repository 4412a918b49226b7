// Package block splits a markdown document into blocks, classifies them and
// builds the html subtree for each one.
package block

import (
	"fmt"
	"strconv"
	"strings"
)

type Type uint8

const (
	Paragraph Type = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

func (t Type) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

const fence = "```"

// Split breaks a document on blank lines. Blocks are trimmed and empty ones
// are dropped.
func Split(doc string) []string {
	var blocks []string
	for _, b := range strings.Split(doc, "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Classify returns the type of a trimmed block. The first matching rule wins.
func Classify(block string) Type {
	if HeadingLevel(block) > 0 {
		return Heading
	}

	if strings.HasPrefix(block, fence) && strings.HasSuffix(block, fence) {
		return Code
	}

	lines := strings.Split(block, "\n")
	switch {
	case every(lines, func(_ int, l string) bool { return strings.HasPrefix(l, ">") }):
		return Quote
	case every(lines, func(_ int, l string) bool { return strings.HasPrefix(l, "- ") }):
		return UnorderedList
	case every(lines, func(i int, l string) bool { return strings.HasPrefix(l, orderedPrefix(i)) }):
		return OrderedList
	}
	return Paragraph
}

// HeadingLevel returns 1-6 for a block starting with that many '#' and a
// space, and 0 otherwise.
func HeadingLevel(block string) int {
	for level := 1; level <= 6; level++ {
		if strings.HasPrefix(block, strings.Repeat("#", level)+" ") {
			return level
		}
	}
	return 0
}

func orderedPrefix(i int) string {
	return strconv.Itoa(i+1) + ". "
}

func every(lines []string, ok func(int, string) bool) bool {
	for i, l := range lines {
		if !ok(i, l) {
			return false
		}
	}
	return true
}
