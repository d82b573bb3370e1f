package html

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// CharsetEncoding names a canonical character encoding along with the labels
// that resolve to it (spec.md §4.1).
type CharsetEncoding struct {
	Name   string
	Labels []string
	codec  encoding.Encoding // nil for UTF-8, which needs no transform
}

var (
	encUTF8 = &CharsetEncoding{
		Name: "UTF-8",
		Labels: []string{
			"utf-8", "utf8", "unicode-1-1-utf-8",
			"unicode11utf8", "unicode20utf8", "x-unicode20utf8",
		},
	}
	encWindows1252 = &CharsetEncoding{
		Name: "windows-1252",
		Labels: []string{
			"windows-1252", "windows1252", "cp1252", "x-cp1252",
			"ansi_x3.4-1968", "ascii", "us-ascii",
			"iso-ir-100", "csisolatin1",
		},
		codec: charmap.Windows1252,
	}
	encISO88591 = &CharsetEncoding{
		Name: "ISO-8859-1",
		Labels: []string{
			"iso-8859-1", "iso8859-1", "iso88591",
			"iso_8859-1", "iso_8859-1:1987",
			"latin1", "latin-1", "l1",
			"cp819", "ibm819",
		},
	}
	encISO88592 = &CharsetEncoding{
		Name: "iso-8859-2",
		Labels: []string{
			"iso-8859-2", "iso8859-2", "iso88592",
			"iso_8859-2", "iso_8859-2:1987",
			"iso-ir-101", "csisolatin2",
			"latin2", "latin-2", "l2",
		},
		codec: charmap.ISO8859_2,
	}
	encEUCJP = &CharsetEncoding{
		Name: "euc-jp",
		Labels: []string{
			"euc-jp", "eucjp",
			"cseucpkdfmtjapanese", "x-euc-jp",
		},
		codec: japanese.EUCJP,
	}
	encUTF16   = &CharsetEncoding{Name: "utf-16", Labels: []string{"utf-16", "utf16"}}
	encUTF16LE = &CharsetEncoding{
		Name:   "utf-16le",
		Labels: []string{"utf-16le", "utf16le"},
		codec:  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	}
	encUTF16BE = &CharsetEncoding{
		Name:   "utf-16be",
		Labels: []string{"utf-16be", "utf16be"},
		codec:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	}
)

var knownEncodings = []*CharsetEncoding{
	encUTF8, encWindows1252, encISO88591, encISO88592, encEUCJP,
	encUTF16, encUTF16LE, encUTF16BE,
}

const (
	utf16LEName = "utf-16le"
	utf16BEName = "utf-16be"
)

var asciiWhitespace = map[byte]bool{
	0x09: true, 0x0A: true, 0x0C: true, 0x0D: true, 0x20: true,
}

// DecodeDocument decodes raw bytes to text per spec.md §4.1's precedence:
// transport label, then BOM, then a bounded <meta charset> prescan, then the
// windows-1252 fallback. transportLabel is the Content-Type charset param,
// if any; pass "" when none was supplied.
func DecodeDocument(data []byte, transportLabel string) (string, *CharsetEncoding, error) {
	if transportLabel != "" {
		if enc := normalizeEncodingLabel(transportLabel); enc != nil {
			bomLen := bomLength(detectBOM(data))
			text, err := decodeWithEncoding(data[bomLen:], enc)
			return text, enc, err
		}
	}

	if bom := detectBOM(data); bom != nil {
		text, err := decodeWithEncoding(data[bomLength(bom):], bom)
		return text, bom, err
	}

	if enc := prescanForMetaCharset(data); enc != nil {
		text, err := decodeWithEncoding(data, enc)
		return text, enc, err
	}

	text, err := decodeWithEncoding(data, encWindows1252)
	return text, encWindows1252, err
}

func detectBOM(data []byte) *CharsetEncoding {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return encUTF8
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return encUTF16LE
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return encUTF16BE
	}
	return nil
}

func bomLength(enc *CharsetEncoding) int {
	if enc == nil {
		return 0
	}
	switch enc.Name {
	case "UTF-8":
		return 3
	case utf16LEName, utf16BEName:
		return 2
	default:
		return 0
	}
}

// normalizeEncodingLabel resolves a label to its canonical encoding,
// substituting windows-1252 for utf-7 (security, spec.md §4.1) and for
// iso-8859-1 (HTML's historic alias rule). Returns nil for unknown labels.
func normalizeEncodingLabel(label string) *CharsetEncoding {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil
	}

	if label == "utf-7" || label == "utf7" || label == "x-utf-7" {
		return encWindows1252
	}

	for _, enc := range knownEncodings {
		for _, l := range enc.Labels {
			if l == label {
				if enc == encISO88591 {
					return encWindows1252
				}
				return enc
			}
		}
	}
	return nil
}

// normalizeMetaDeclaredEncoding applies the additional HTML meta-charset
// rule that a declared UTF-16/UTF-32 encoding is read back as UTF-8
// (spec.md §4.1), since the bytes that declared it were necessarily ASCII.
func normalizeMetaDeclaredEncoding(label []byte) *CharsetEncoding {
	switch strings.ToLower(strings.TrimSpace(string(label))) {
	case "utf-32", "utf-32le", "utf-32be":
		return encUTF8
	}
	enc := normalizeEncodingLabel(string(label))
	if enc == nil {
		return nil
	}
	switch enc.Name {
	case "utf-16", utf16LEName, utf16BEName, "utf-32", "utf-32le", "utf-32be":
		return encUTF8
	}
	return enc
}

func isASCIIWhitespace(b byte) bool { return asciiWhitespace[b] }

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b | 0x20
	}
	return b
}

func skipASCIIWhitespace(data []byte, i int) int {
	n := len(data)
	for i < n && isASCIIWhitespace(data[i]) {
		i++
	}
	return i
}

func stripASCIIWhitespace(value []byte) []byte {
	start, end := 0, len(value)
	for start < end && isASCIIWhitespace(value[start]) {
		start++
	}
	for end > start && isASCIIWhitespace(value[end-1]) {
		end--
	}
	return value[start:end]
}

// extractCharsetFromContent pulls the charset= value out of a
// http-equiv="content-type" meta's content attribute.
func extractCharsetFromContent(contentBytes []byte) []byte {
	if len(contentBytes) == 0 {
		return nil
	}

	b := make([]byte, len(contentBytes))
	for i, ch := range contentBytes {
		if isASCIIWhitespace(ch) {
			b[i] = ' '
		} else {
			b[i] = asciiLower(ch)
		}
	}

	idx := bytes.Index(b, []byte("charset"))
	if idx == -1 {
		return nil
	}

	i := idx + len("charset")
	n := len(b)

	for i < n && b[i] == ' ' {
		i++
	}
	if i >= n || b[i] != '=' {
		return nil
	}
	i++
	for i < n && b[i] == ' ' {
		i++
	}
	if i >= n {
		return nil
	}

	var quote byte
	if b[i] == '"' || b[i] == '\'' {
		quote = b[i]
		i++
	}

	start := i
	for i < n {
		ch := b[i]
		if quote != 0 {
			if ch == quote {
				break
			}
		} else if ch == ' ' || ch == ';' {
			break
		}
		i++
	}

	if quote != 0 && (i >= n || b[i] != quote) {
		return nil
	}
	return b[start:i]
}

// prescanForMetaCharset scans up to 1024 bytes of non-comment content
// (bounded overall at 65536 bytes) for a meta charset declaration, per
// spec.md §4.1.
//
//nolint:gocognit,gocyclo,nestif,cyclop,funlen // mirrors the spec's prescan algorithm
func prescanForMetaCharset(data []byte) *CharsetEncoding {
	const maxNonComment = 1024
	const maxTotalScan = 65536

	n := len(data)
	i := 0
	nonComment := 0

	for i < n && i < maxTotalScan && nonComment < maxNonComment {
		if data[i] != '<' {
			i++
			nonComment++
			continue
		}

		if i+3 < n && data[i+1] == '!' && data[i+2] == '-' && data[i+3] == '-' {
			end := bytes.Index(data[i+4:], []byte("-->"))
			if end == -1 {
				return nil
			}
			i = i + 4 + end + 3
			continue
		}

		j := i + 1
		if j < n && data[j] == '/' {
			k := i
			var quote byte
			for k < n && k < maxTotalScan && nonComment < maxNonComment {
				ch := data[k]
				if quote == 0 {
					if ch == '"' || ch == '\'' {
						quote = ch
					} else if ch == '>' {
						k++
						nonComment++
						break
					}
				} else if ch == quote {
					quote = 0
				}
				k++
				nonComment++
			}
			i = k
			continue
		}

		if j >= n || !isASCIIAlpha(data[j]) {
			i++
			nonComment++
			continue
		}

		nameStart := j
		for j < n && isASCIIAlpha(data[j]) {
			j++
		}
		tagName := data[nameStart:j]
		if !bytes.Equal(bytes.ToLower(tagName), []byte("meta")) {
			k := i
			var quote byte
			for k < n && k < maxTotalScan && nonComment < maxNonComment {
				ch := data[k]
				if quote == 0 {
					if ch == '"' || ch == '\'' {
						quote = ch
					} else if ch == '>' {
						k++
						nonComment++
						break
					}
				} else if ch == quote {
					quote = 0
				}
				k++
				nonComment++
			}
			i = k
			continue
		}

		var charset, httpEquiv, content []byte
		k := j
		sawGT := false
		startI := i

		for k < n && k < maxTotalScan {
			ch := data[k]
			if ch == '>' {
				sawGT = true
				k++
				break
			}
			if ch == '<' {
				break
			}
			if isASCIIWhitespace(ch) || ch == '/' {
				k++
				continue
			}

			attrStart := k
			for k < n {
				ch = data[k]
				if isASCIIWhitespace(ch) || ch == '=' || ch == '>' || ch == '/' || ch == '<' {
					break
				}
				k++
			}
			attrName := bytes.ToLower(data[attrStart:k])
			k = skipASCIIWhitespace(data, k)

			var value []byte
			if k < n && data[k] == '=' {
				k++
				k = skipASCIIWhitespace(data, k)
				if k >= n {
					break
				}
				var quote byte
				if data[k] == '"' || data[k] == '\'' {
					quote = data[k]
					k++
					valStart := k
					endQuote := bytes.IndexByte(data[k:], quote)
					if endQuote == -1 {
						i++
						nonComment++
						charset, httpEquiv, content = nil, nil, nil
						sawGT = false
						break
					}
					value = data[valStart : k+endQuote]
					k = k + endQuote + 1
				} else {
					valStart := k
					for k < n {
						ch = data[k]
						if isASCIIWhitespace(ch) || ch == '>' || ch == '<' {
							break
						}
						k++
					}
					value = data[valStart:k]
				}
			}

			switch {
			case bytes.Equal(attrName, []byte("charset")):
				charset = stripASCIIWhitespace(value)
			case bytes.Equal(attrName, []byte("http-equiv")):
				httpEquiv = value
			case bytes.Equal(attrName, []byte("content")):
				content = value
			}
		}

		if sawGT {
			if charset != nil {
				if enc := normalizeMetaDeclaredEncoding(charset); enc != nil {
					return enc
				}
			}
			if httpEquiv != nil && bytes.Equal(bytes.ToLower(httpEquiv), []byte("content-type")) && content != nil {
				if extracted := extractCharsetFromContent(content); extracted != nil {
					if enc := normalizeMetaDeclaredEncoding(extracted); enc != nil {
						return enc
					}
				}
			}
			i = k
			nonComment += i - startI
		} else {
			i++
			nonComment++
		}
	}

	return nil
}

// decodeWithEncoding transforms raw bytes to text. UTF-8 and bare
// ISO-8859-1 (a direct byte-to-codepoint mapping) are handled inline;
// everything else that needs real codec tables is delegated to
// golang.org/x/text/encoding rather than hand-rolled (spec.md §4.1's
// decode step names these as the supported non-UTF-8 encodings).
func decodeWithEncoding(data []byte, enc *CharsetEncoding) (string, error) {
	switch enc.Name {
	case "UTF-8":
		return string(data), nil

	case "ISO-8859-1":
		var sb strings.Builder
		sb.Grow(len(data))
		for _, b := range data {
			sb.WriteRune(rune(b))
		}
		return sb.String(), nil

	case "utf-16":
		if len(data) >= 2 {
			if data[0] == 0xFF && data[1] == 0xFE {
				return decodeWithEncoding(data[2:], encUTF16LE)
			}
			if data[0] == 0xFE && data[1] == 0xFF {
				return decodeWithEncoding(data[2:], encUTF16BE)
			}
		}
		return decodeWithEncoding(data, encUTF16LE)

	default:
		if enc.codec == nil {
			return "", ErrUnsupportedEncoding
		}
		// Malformed sequences become U+FFFD with no error, per spec.md §9's
		// "replace" decode policy for EUC-JP and ISO-8859-2.
		decoded, err := encoding.ReplaceUnsupported(enc.codec).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
}
