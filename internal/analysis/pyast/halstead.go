package pyast

import (
	"math"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Halstead holds operator/operand tallies for one file
type Halstead struct {
	DistinctOperators int
	DistinctOperands  int
	TotalOperators    int
	TotalOperands     int
}

// Volume computes the Halstead volume N * log2(n)
func (h Halstead) Volume() float64 {
	vocabulary := h.DistinctOperators + h.DistinctOperands
	length := h.TotalOperators + h.TotalOperands
	if vocabulary == 0 || length == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(vocabulary))
}

var operandKinds = map[string]bool{
	"identifier": true,
	"integer":    true,
	"float":      true,
	"true":       true,
	"false":      true,
	"none":       true,
}

// tallyHalstead walks leaf tokens, classifying identifiers and literals as
// operands and everything else (keywords, operators, punctuation) as
// operators. Comments and string bodies are skipped.
func tallyHalstead(root *tree_sitter.Node, source []byte) Halstead {
	operators := make(map[string]int)
	operands := make(map[string]int)
	tallyNode(root, source, operators, operands)

	h := Halstead{
		DistinctOperators: len(operators),
		DistinctOperands:  len(operands),
	}
	for _, n := range operators {
		h.TotalOperators += n
	}
	for _, n := range operands {
		h.TotalOperands += n
	}
	return h
}

func tallyNode(node *tree_sitter.Node, source []byte, operators, operands map[string]int) {
	if node == nil {
		return
	}

	kind := node.Kind()
	if kind == "comment" {
		return
	}
	if kind == "string" {
		operands[node.Utf8Text(source)]++
		return
	}

	if node.ChildCount() == 0 {
		text := node.Utf8Text(source)
		if text == "" {
			return
		}
		if operandKinds[kind] {
			operands[text]++
		} else {
			operators[kind]++
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		tallyNode(node.Child(i), source, operators, operands)
	}
}

// MaintainabilityIndex computes the standard MI on a 0-100 scale from the
// file's Halstead volume, cyclomatic complexity, and non-blank line count.
func MaintainabilityIndex(volume float64, complexity, sloc int) float64 {
	if sloc == 0 {
		return 100
	}
	lnV := 0.0
	if volume > 0 {
		lnV = math.Log(volume)
	}
	mi := (171 - 5.2*lnV - 0.23*float64(complexity) - 16.2*math.Log(float64(sloc))) * 100 / 171
	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}
