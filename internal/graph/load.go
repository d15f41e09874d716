package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned when an edge-list line does not hold
// exactly two fields.
var ErrMalformedLine = errors.New("malformed edge line")

// ErrInvalidNode is returned when a field is not a non-negative integer.
var ErrInvalidNode = errors.New("invalid node id")

// ParseError describes the edge-list line that failed to parse.
type ParseError struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // ErrMalformedLine or ErrInvalidNode
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

// Unwrap returns the underlying sentinel.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads an edge-list file and builds a Graph from it. The file
// holds one edge per line as two whitespace-separated non-negative
// integers. Any unreadable or malformed input aborts the load; no
// partial graph is ever returned.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge list: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

// Read parses an edge list from r. Blank lines are skipped.
func Read(r io.Reader) (*Graph, error) {
	var edges []Edge
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &ParseError{Line: lineNo, Text: text, Err: ErrMalformedLine}
		}
		u, err := parseNode(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		v, err := parseNode(fields[1])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		edges = append(edges, Edge{U: u, V: v})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list: %w", err)
	}
	return New(edges), nil
}

func parseNode(field string) (int, error) {
	id, err := strconv.Atoi(field)
	if err != nil || id < 0 {
		return 0, ErrInvalidNode
	}
	return id, nil
}
