package services

import (
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxBaseNameLen    = 100
	maxOriginalLength = 255
)

var (
	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
	safeExtRe = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

// sanitizeFileName makes a client file name ASCII-safe for object keys and headers.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := baseName(original)
	if s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, path.Ext(s))
	if !safeExtRe.MatchString(ext) {
		ext = ""
	}

	// [a-z0-9] kept, runs of '-', '_', '.' and spaces collapse to one '-'
	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

// originalName keeps what the user sees: the last path element, trimmed and length capped.
func originalName(raw string) string {
	s := baseName(raw)
	if s == "" {
		return "file"
	}
	if utf8.RuneCountInString(s) > maxOriginalLength {
		s = string([]rune(s)[:maxOriginalLength])
	}
	return s
}

// storageExt prefers the uploaded name's extension and falls back to the MIME one.
func storageExt(sanitized, mimeExt string) string {
	if ext := path.Ext(sanitized); safeExtRe.MatchString(ext) {
		return ext
	}
	return mimeExt
}

func baseName(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimSpace(path.Base(s))
	if s == "." || s == ".." || s == "/" {
		return ""
	}
	return s
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
