package util

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"io"
	"os"
	"strconv"
	"strings"
)

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// ReadFloatsFromFile reads whitespace separated float values from the given file.
// An empty file, or one containing "none", yields an empty result.
func ReadFloatsFromFile(path string) ([]float64, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFloats(string(data))
}

// ParseFloats parses whitespace separated float values, treating "" and "none" as no values
func ParseFloats(text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if len(text) <= 0 || strings.EqualFold(text, "none") {
		return nil, nil
	}
	fields := strings.Fields(text)
	result := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s': %w", field, err)
		}
		result = append(result, value)
	}
	return result, nil
}

// WriteFileAtomic replaces the content of path with the content of r,
// never leaving a partially written file behind.
func WriteFileAtomic(path string, r io.Reader) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, r)
}
