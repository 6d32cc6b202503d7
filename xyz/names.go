// Package xyz provides API for reading and writing tiles in XYZ directory format,
// where tiles are stored as individual files with paths like "root/z/x/y.ext".
package xyz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidExtension = errors.New("tilepack: invalid tile file extension")

// normalizeExtension returns ext with a leading dot ("png" -> ".png").
func normalizeExtension(ext string) (string, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return "." + ext, nil
}

// ParseIndex parses a zoom, column or row name made entirely of decimal digits.
// It reports false for anything else, including values overflowing uint32.
func ParseIndex(name string) (uint32, bool) {
	if name == "" {
		return 0, false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
	}
	value, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(value), true
}

// ParseTileName parses a tile file name like "12.png" into its row.
// The name must end with ext and the remaining base name must satisfy ParseIndex.
func ParseTileName(name, ext string) (uint32, bool) {
	base, found := strings.CutSuffix(name, ext)
	if !found {
		return 0, false
	}
	return ParseIndex(base)
}
