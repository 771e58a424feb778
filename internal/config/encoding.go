package config

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var charmaps = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"latin9":       charmap.ISO8859_15,
}

// Charmap returns the code page named by parser.encoding.
func (p Parser) Charmap() (*charmap.Charmap, error) {
	cm, ok := charmaps[strings.ToLower(strings.TrimSpace(p.Encoding))]
	if !ok {
		return nil, fmt.Errorf("parser.encoding: unsupported value %q (supported: %s)", p.Encoding, strings.Join(SupportedEncodings(), ", "))
	}
	return cm, nil
}

// SupportedEncodings lists accepted parser.encoding values.
func SupportedEncodings() []string {
	names := make([]string, 0, len(charmaps))
	for name := range charmaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
