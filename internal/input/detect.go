// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bytes"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatPDF
	FormatXLSX
	FormatCSV
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatPDF:
		return "pdf"
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
)

// Detect picks a format from the file extension, falling back to the
// leading bytes of the content when the extension is missing or unknown.
func Detect(name string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".pdf":
		return FormatPDF
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	}

	// Probe the content
	switch {
	case bytes.HasPrefix(head, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(head, zipMagic):
		return FormatXLSX
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatUnknown
}
