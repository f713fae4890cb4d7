// Package batch runs named RPN expressions from a YAML document and reports
// the results.
package batch

import (
	"fmt"
	"strings"

	"github.com/itchyny/go-yaml"

	"github.com/speakeasy-api/rpn"
)

// Case is a single named expression with an optional expectation.
type Case struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
	// Want is the expected value, if any.
	Want *int64 `yaml:"want,omitempty"`
	// Error is the expected error kind name, e.g. "DivisionByZero".
	Error string `yaml:"error,omitempty"`
}

// Batch is the document accepted by ParseBatch.
type Batch struct {
	Cases []Case `yaml:"cases"`
}

// ParseBatch decodes and validates a batch document.
func ParseBatch(data []byte) (*Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}

	if len(b.Cases) == 0 {
		return nil, fmt.Errorf("batch requires at least one case")
	}

	seen := make(map[string]bool, len(b.Cases))
	for i := range b.Cases {
		c := &b.Cases[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("batch: duplicate case name %q", c.Name)
		}
		seen[c.Name] = true

		if c.Want != nil && c.Error != "" {
			return nil, fmt.Errorf("batch: case %q: 'want' and 'error' are mutually exclusive", c.Name)
		}
		if c.Error != "" {
			if _, ok := rpn.ParseErrorKind(c.Error); !ok {
				return nil, fmt.Errorf("batch: case %q: unknown error kind %q", c.Name, c.Error)
			}
		}
	}

	return &b, nil
}
