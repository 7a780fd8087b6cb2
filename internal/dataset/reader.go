package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Sentence is one parsed block of a tagged file with its parallel tag and
// label columns.
type Sentence struct {
	Tokens []string
	Tags   []string
	Labels []string
}

// Text returns the space-joined token sequence.
func (s Sentence) Text() string {
	return strings.Join(s.Tokens, " ")
}

// ReadSentences reconstructs the sentence texts from a tagged file: blocks
// are delimited by blank lines and each line contributes its first
// whitespace field. A trailing block without a terminating blank line is
// still returned. Lines with extra or missing columns are tolerated.
func ReadSentences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	var sentences []string
	var current []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(current) > 0 {
				sentences = append(sentences, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 1 {
			current = append(current, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	if len(current) > 0 {
		sentences = append(sentences, strings.Join(current, " "))
	}
	return sentences, nil
}

// ReadTagged parses a tagged file into full token/tag/label triples per
// sentence block. Unlike ReadSentences it is strict: every non-blank line
// must have exactly three columns.
func ReadTagged(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	var sentences []Sentence
	var current Sentence
	lineNo := 0

	flush := func() {
		if len(current.Tokens) > 0 {
			sentences = append(sentences, current)
			current = Sentence{}
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed line %d in %s: expected 3 columns, got %d", lineNo, path, len(fields))
		}
		current.Tokens = append(current.Tokens, fields[0])
		current.Tags = append(current.Tags, fields[1])
		current.Labels = append(current.Labels, fields[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	flush()
	return sentences, nil
}
