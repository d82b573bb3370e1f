package html

import "strings"

// decodeCharacterReferences expands `&name;`, `&name` (legacy), `&#digits;`
// and `&#xhex;` references in s (spec.md §4.2). attrContext enables the
// stricter legacy-entity suppression rule used for attribute values.
// record, if non-nil, is called for each parse error encountered.
func decodeCharacterReferences(s string, attrContext bool, record func(code string)) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		decoded, consumed, ok := matchCharacterReference(s[i:], attrContext, record)
		if !ok {
			sb.WriteByte('&')
			i++
			continue
		}
		sb.WriteString(decoded)
		i += consumed
	}

	return sb.String()
}

// matchCharacterReference attempts to match a character reference at the
// start of s (s[0] == '&'). Returns the decoded text, the number of bytes of
// s it consumed, and whether a match was found.
func matchCharacterReference(s string, attrContext bool, record func(code string)) (string, int, bool) {
	if len(s) < 2 {
		return "", 0, false
	}

	if s[1] == '#' {
		return matchNumericReference(s, record)
	}

	return matchNamedOrLegacyReference(s, attrContext, record)
}

func matchNumericReference(s string, record func(code string)) (string, int, bool) {
	i := 2 // past "&#"
	hex := false
	if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
		hex = true
		i++
	}

	digitsStart := i
	isDigit := func(c byte) bool {
		if hex {
			return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		}
		return c >= '0' && c <= '9'
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digitsStart {
		if record != nil {
			record(ErrAbsenceOfDigitsInNumericCharRef)
		}
		return "", 0, false
	}

	digits := s[digitsStart:i]
	consumed := i
	if i < len(s) && s[i] == ';' {
		consumed++
	} else if record != nil {
		record(ErrMissingSemicolonAfterCharRef)
	}

	base := int64(10)
	if hex {
		base = 16
	}
	var cp int64
	for _, c := range digits {
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		}
		cp = cp*base + d
		if cp > 0x10FFFF {
			cp = 0x10FFFF + 1 // clamp; replaced below regardless of exact value
		}
	}

	return string(substituteNumericCodepoint(cp, record)), consumed, true
}

// substituteNumericCodepoint applies the Windows-1252 C1 substitution table,
// NULL replacement, and out-of-range/surrogate replacement (spec.md §4.2).
func substituteNumericCodepoint(cp int64, record func(code string)) rune {
	if cp == 0 {
		if record != nil {
			record(ErrNullCharRef)
		}
		return 0xFFFD
	}
	if r, ok := numericC1Substitutions[cp]; ok {
		return r
	}
	if cp > 0x10FFFF {
		if record != nil {
			record(ErrCharRefOutsideUnicodeRange)
		}
		return 0xFFFD
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		if record != nil {
			record(ErrSurrogateCharRef)
		}
		return 0xFFFD
	}
	if record != nil {
		if (cp >= 0x0001 && cp <= 0x0008) || cp == 0x000B || (cp >= 0x000E && cp <= 0x001F) ||
			(cp >= 0x007F && cp <= 0x009F) || isNoncharacter(cp) {
			record(ErrControlCharReference)
		}
	}
	return rune(cp)
}

func isNoncharacter(cp int64) bool {
	if cp >= 0xFDD0 && cp <= 0xFDEF {
		return true
	}
	switch cp & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

// numericC1Substitutions is the HTML5 table substituting Windows-1252
// interpretations for numeric references in the C1 control range.
var numericC1Substitutions = map[int64]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

// matchNamedOrLegacyReference matches against the named entity table
// (requires a trailing semicolon, except for the legacy subset) and, failing
// a full match, the legacy set via longest-prefix matching (spec.md §4.2).
func matchNamedOrLegacyReference(s string, attrContext bool, record func(code string)) (string, int, bool) {
	// s[0] == '&'; scan a bounded run of name characters.
	end := 1
	for end < len(s) && end < 64 && isEntityNameByte(s[end]) {
		end++
	}

	if end < len(s) && s[end] == ';' {
		name := s[1:end] + ";"
		if v, ok := namedEntities[name]; ok {
			return v, end + 1, true
		}
		if v, ok := legacyEntities[name[:len(name)-1]]; ok {
			return string(v), end + 1, true
		}
		if record != nil {
			record(ErrUnknownNamedCharacterReference)
		}
	}

	// Longest-prefix match within the legacy (semicolon-optional) set.
	best := ""
	for l := end - 1; l >= 1; l-- {
		name := s[1 : 1+l]
		if _, ok := legacyEntities[name]; ok {
			best = name
			break
		}
	}
	if best == "" {
		return "", 0, false
	}

	consumed := 1 + len(best)
	if attrContext {
		next := byte(0)
		if consumed < len(s) {
			next = s[consumed]
		}
		if next == '=' || isAlphanumeric(next) {
			// Attribute-context suppression: a legacy match immediately
			// followed by '=' or an alphanumeric in attribute context is
			// not consumed (spec.md §4.2).
			return "", 0, false
		}
	}
	if record != nil {
		record(ErrMissingSemicolonAfterCharRef)
	}
	return string(legacyEntities[best]), consumed, true
}

func isEntityNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// legacyEntities is the ~105-entry semicolon-optional set inherited from
// HTML4 (spec.md §4.2): ISO-Latin-1 entities plus amp/lt/gt/quot and their
// uppercase ampersand-keyword variants.
var legacyEntities = map[string]rune{
	"AElig": 0x00C6, "AMP": 0x0026, "Aacute": 0x00C1, "Acirc": 0x00C2,
	"Agrave": 0x00C0, "Aring": 0x00C5, "Atilde": 0x00C3, "Auml": 0x00C4,
	"COPY": 0x00A9, "Ccedil": 0x00C7, "ETH": 0x00D0, "Eacute": 0x00C9,
	"Ecirc": 0x00CA, "Egrave": 0x00C8, "Euml": 0x00CB, "GT": 0x003E,
	"Iacute": 0x00CD, "Icirc": 0x00CE, "Igrave": 0x00CC, "Iuml": 0x00CF,
	"LT": 0x003C, "Ntilde": 0x00D1, "Oacute": 0x00D3, "Ocirc": 0x00D4,
	"Ograve": 0x00D2, "Oslash": 0x00D8, "Otilde": 0x00D5, "Ouml": 0x00D6,
	"QUOT": 0x0022, "REG": 0x00AE, "THORN": 0x00DE, "Uacute": 0x00DA,
	"Ucirc": 0x00DB, "Ugrave": 0x00D9, "Uuml": 0x00DC, "Yacute": 0x00DD,
	"aacute": 0x00E1, "acirc": 0x00E2, "acute": 0x00B4, "aelig": 0x00E6,
	"agrave": 0x00E0, "amp": 0x0026, "aring": 0x00E5, "atilde": 0x00E3,
	"auml": 0x00E4, "brvbar": 0x00A6, "ccedil": 0x00E7, "cedil": 0x00B8,
	"cent": 0x00A2, "copy": 0x00A9, "curren": 0x00A4, "deg": 0x00B0,
	"divide": 0x00F7, "eacute": 0x00E9, "ecirc": 0x00EA, "egrave": 0x00E8,
	"eth": 0x00F0, "euml": 0x00EB, "frac12": 0x00BD, "frac14": 0x00BC,
	"frac34": 0x00BE, "gt": 0x003E, "iacute": 0x00ED, "icirc": 0x00EE,
	"iexcl": 0x00A1, "igrave": 0x00EC, "iquest": 0x00BF, "iuml": 0x00EF,
	"laquo": 0x00AB, "lt": 0x003C, "macr": 0x00AF, "micro": 0x00B5,
	"middot": 0x00B7, "nbsp": 0x00A0, "not": 0x00AC, "ntilde": 0x00F1,
	"oacute": 0x00F3, "ocirc": 0x00F4, "ograve": 0x00F2, "ordf": 0x00AA,
	"ordm": 0x00BA, "oslash": 0x00F8, "otilde": 0x00F5, "ouml": 0x00F6,
	"para": 0x00B6, "plusmn": 0x00B1, "pound": 0x00A3, "quot": 0x0022,
	"raquo": 0x00BB, "reg": 0x00AE, "sect": 0x00A7, "shy": 0x00AD,
	"sup1": 0x00B9, "sup2": 0x00B2, "sup3": 0x00B3, "szlig": 0x00DF,
	"thorn": 0x00FE, "times": 0x00D7, "uacute": 0x00FA, "ucirc": 0x00FB,
	"ugrave": 0x00F9, "uml": 0x00A8, "uuml": 0x00FC, "yacute": 0x00FD,
	"yen": 0x00A5, "yuml": 0x00FF,
}

// namedEntities is a 418-entry subset of the WHATWG HTML5 named character
// reference table (spec.md §4.2); names outside the groups listed here are
// not recognized. It covers ASCII punctuation, the Greek alphabet, general punctuation,
// arrows (short and long forms), the Latin-1 supplement, mathematical
// operators including the big n-ary operators, and the double-struck,
// script, and fraktur mathematical alphabets (each complete, A-Z and a-z,
// including their Letterlike-Symbols legacy-compatibility code points).
// Mathematical-plane entries use \U escapes rather than literal characters,
// since those code points don't render in most plain-text editors.
var namedEntities = map[string]string{
	"Tab;": "\t", "NewLine;": "\n", "excl;": "!",
	"num;": "#", "dollar;": "$", "percnt;": "%",
	"ast;": "*", "colon;": ":", "semi;": ";",
	"quest;": "?", "commat;": "@", "lbrack;": "[",
	"bsol;": "\\", "rbrack;": "]", "Hat;": "^",
	"lowbar;": "_", "grave;": "`", "lbrace;": "{",
	"verbar;": "|", "rbrace;": "}",
	"Alpha;": "Α", "alpha;": "α", "Beta;": "Β", "beta;": "β",
	"Gamma;": "Γ", "gamma;": "γ", "Delta;": "Δ", "delta;": "δ",
	"Epsilon;": "Ε", "epsilon;": "ε", "Zeta;": "Ζ", "zeta;": "ζ",
	"Eta;": "Η", "eta;": "η", "Theta;": "Θ", "theta;": "θ",
	"Iota;": "Ι", "iota;": "ι", "Kappa;": "Κ", "kappa;": "κ",
	"Lambda;": "Λ", "lambda;": "λ", "Mu;": "Μ", "mu;": "μ",
	"Nu;": "Ν", "nu;": "ν", "Xi;": "Ξ", "xi;": "ξ",
	"Omicron;": "Ο", "omicron;": "ο", "Pi;": "Π", "pi;": "π",
	"Rho;": "Ρ", "rho;": "ρ", "Sigma;": "Σ", "sigma;": "σ",
	"Tau;": "Τ", "tau;": "τ", "Upsilon;": "Υ", "upsilon;": "υ",
	"Phi;": "Φ", "phi;": "φ", "Chi;": "Χ", "chi;": "χ",
	"Psi;": "Ψ", "psi;": "ψ", "Omega;": "Ω", "omega;": "ω",
	"forall;": "∀", "part;": "∂", "exist;": "∃", "empty;": "∅",
	"nabla;": "∇", "isin;": "∈", "notin;": "∉", "ni;": "∋",
	"prod;": "∏", "sum;": "∑", "minus;": "−", "lowast;": "∗",
	"radic;": "√", "prop;": "∝", "infin;": "∞", "ang;": "∠",
	"and;": "∧", "or;": "∨", "cap;": "∩", "cup;": "∪",
	"int;": "∫", "there4;": "∴", "sim;": "∼", "cong;": "≅",
	"asymp;": "≈", "ne;": "≠", "equiv;": "≡", "le;": "≤",
	"ge;": "≥", "sub;": "⊂", "sup;": "⊃", "nsub;": "⊄",
	"sube;": "⊆", "supe;": "⊇", "oplus;": "⊕", "otimes;": "⊗",
	"perp;": "⊥", "sdot;": "⋅",
	"larr;": "←", "uarr;": "↑", "rarr;": "→", "darr;": "↓",
	"harr;": "↔", "crarr;": "↵",
	"lArr;": "⇐", "uArr;": "⇑", "rArr;": "⇒", "dArr;": "⇓",
	"hArr;": "⇔",
	"spades;": "♠", "clubs;": "♣", "hearts;": "♥", "diams;": "♦",
	"loz;": "◊", "bull;": "•", "hellip;": "…", "prime;": "′",
	"Prime;": "″", "oline;": "‾", "frasl;": "⁄",
	"ndash;": "–", "mdash;": "—", "lsquo;": "‘", "rsquo;": "’",
	"sbquo;": "‚", "ldquo;": "“", "rdquo;": "”", "bdquo;": "„",
	"dagger;": "†", "Dagger;": "‡", "permil;": "‰",
	"lsaquo;": "‹", "rsaquo;": "›", "euro;": "€",
	"trade;": "™", "alefsym;": "ℵ",
	"image;": "ℑ", "real;": "ℜ", "weierp;": "℘",
	"thinsp;": " ", "ensp;": " ", "emsp;": " ", "zwnj;": "‌",
	"zwj;": "‍", "lrm;": "‎", "rlm;": "‏",
	"fnof;": "ƒ", "circ;": "ˆ", "tilde;": "˜",
	"amp;": "&", "lt;": "<", "gt;": ">", "quot;": "\"",
	"apos;": "'", "OElig;": "Œ", "oelig;": "œ",
	"Scaron;": "Š", "scaron;": "š", "Yuml;": "Ÿ",
	"nbsp;": " ", "iexcl;": "¡", "cent;": "¢", "pound;": "£",
	"curren;": "¤", "yen;": "¥", "brvbar;": "¦", "sect;": "§",
	"uml;": "¨", "copy;": "©", "ordf;": "ª", "laquo;": "«",
	"not;": "¬", "shy;": "­", "reg;": "®", "macr;": "¯",
	"deg;": "°", "plusmn;": "±", "sup2;": "²", "sup3;": "³",
	"acute;": "´", "micro;": "µ", "para;": "¶", "middot;": "·",
	"cedil;": "¸", "sup1;": "¹", "ordm;": "º", "raquo;": "»",
	"frac14;": "¼", "frac12;": "½", "frac34;": "¾", "iquest;": "¿",
	"times;": "×", "divide;": "÷",
	"bigstar;": "★", "check;": "✓", "checkmark;": "✓",
	"cross;": "✗", "starf;": "★", "star;": "☆",
	"HilbertSpace;": "ℋ", "planckh;": "ℎ", "hbar;": "ℏ",
	"plus;": "+", "equals;": "=", "Dot;": "¨", "dot;": "˙",
	"comma;": ",", "period;": ".", "sol;": "/",

	"rightarrow;": "→", "leftarrow;": "←", "uparrow;": "↑", "downarrow;": "↓",
	"leftrightarrow;": "↔", "Leftarrow;": "⇐", "Rightarrow;": "⇒", "Uparrow;": "⇑",
	"Downarrow;": "⇓", "Leftrightarrow;": "⇔",
	"longrightarrow;": "⟶", "longleftarrow;": "⟵", "longleftrightarrow;": "⟷",
	"Longrightarrow;": "⟹", "Longleftarrow;": "⟸", "Longleftrightarrow;": "⟺",
	"mapsto;": "↦", "hookrightarrow;": "↪", "hookleftarrow;": "↩",
	"nearrow;": "↗", "searrow;": "↘", "swarrow;": "↙", "nwarrow;": "↖",
	"rightharpoonup;": "⇀", "rightharpoondown;": "⇁",
	"leftharpoonup;": "↼", "leftharpoondown;": "↽", "rightleftharpoons;": "⇌",

	"bigcap;": "⋂", "bigcup;": "⋃", "bigvee;": "⋁", "bigwedge;": "⋀",
	"bigodot;": "⨀", "bigoplus;": "⨁", "bigotimes;": "⨂", "biguplus;": "⨄",
	"bigsqcup;": "⨆",

	"subsetneq;": "⊊", "supsetneq;": "⊋", "nsubseteq;": "⊈", "nsupseteq;": "⊉",
	"parallel;": "∥", "nexist;": "∄", "emptyset;": "∅", "complement;": "∁",

	"Aopf;": "\U0001D538", "Bopf;": "\U0001D539", "Copf;": "ℂ", "Dopf;": "\U0001D53B",
	"Eopf;": "\U0001D53C", "Fopf;": "\U0001D53D", "Gopf;": "\U0001D53E", "Hopf;": "ℍ",
	"Iopf;": "\U0001D540", "Jopf;": "\U0001D541", "Kopf;": "\U0001D542", "Lopf;": "\U0001D543",
	"Mopf;": "\U0001D544", "Nopf;": "ℕ", "Oopf;": "\U0001D546", "Popf;": "ℙ",
	"Qopf;": "ℚ", "Ropf;": "ℝ", "Sopf;": "\U0001D54A", "Topf;": "\U0001D54B",
	"Uopf;": "\U0001D54C", "Vopf;": "\U0001D54D", "Wopf;": "\U0001D54E", "Xopf;": "\U0001D54F",
	"Yopf;": "\U0001D550", "Zopf;": "ℤ",

	"aopf;": "\U0001D552", "bopf;": "\U0001D553", "copf;": "\U0001D554", "dopf;": "\U0001D555",
	"eopf;": "\U0001D556", "fopf;": "\U0001D557", "gopf;": "\U0001D558", "hopf;": "\U0001D559",
	"iopf;": "\U0001D55A", "jopf;": "\U0001D55B", "kopf;": "\U0001D55C", "lopf;": "\U0001D55D",
	"mopf;": "\U0001D55E", "nopf;": "\U0001D55F", "oopf;": "\U0001D560", "popf;": "\U0001D561",
	"qopf;": "\U0001D562", "ropf;": "\U0001D563", "sopf;": "\U0001D564", "topf;": "\U0001D565",
	"uopf;": "\U0001D566", "vopf;": "\U0001D567", "wopf;": "\U0001D568", "xopf;": "\U0001D569",
	"yopf;": "\U0001D56A", "zopf;": "\U0001D56B",

	"Ascr;": "\U0001D49C", "Bscr;": "ℬ", "Cscr;": "\U0001D49E", "Dscr;": "\U0001D49F",
	"Escr;": "ℰ", "Fscr;": "ℱ", "Gscr;": "\U0001D4A2", "Hscr;": "ℋ",
	"Iscr;": "ℐ", "Jscr;": "\U0001D4A5", "Kscr;": "\U0001D4A6", "Lscr;": "ℒ",
	"Mscr;": "ℳ", "Nscr;": "\U0001D4A9", "Oscr;": "\U0001D4AA", "Pscr;": "\U0001D4AB",
	"Qscr;": "\U0001D4AC", "Rscr;": "ℛ", "Sscr;": "\U0001D4AE", "Tscr;": "\U0001D4AF",
	"Uscr;": "\U0001D4B0", "Vscr;": "\U0001D4B1", "Wscr;": "\U0001D4B2", "Xscr;": "\U0001D4B3",
	"Yscr;": "\U0001D4B4", "Zscr;": "\U0001D4B5",

	"ascr;": "\U0001D4B6", "bscr;": "\U0001D4B7", "cscr;": "\U0001D4B8", "dscr;": "\U0001D4B9",
	"escr;": "ℯ", "fscr;": "\U0001D4BB", "gscr;": "ℊ", "hscr;": "\U0001D4BD",
	"iscr;": "\U0001D4BE", "jscr;": "\U0001D4BF", "kscr;": "\U0001D4C0", "lscr;": "\U0001D4C1",
	"mscr;": "\U0001D4C2", "nscr;": "\U0001D4C3", "oscr;": "ℴ", "pscr;": "\U0001D4C5",
	"qscr;": "\U0001D4C6", "rscr;": "\U0001D4C7", "sscr;": "\U0001D4C8", "tscr;": "\U0001D4C9",
	"uscr;": "\U0001D4CA", "vscr;": "\U0001D4CB", "wscr;": "\U0001D4CC", "xscr;": "\U0001D4CD",
	"yscr;": "\U0001D4CE", "zscr;": "\U0001D4CF",

	"Afr;": "\U0001D504", "Bfr;": "\U0001D505", "Cfr;": "ℭ", "Dfr;": "\U0001D507",
	"Efr;": "\U0001D508", "Ffr;": "\U0001D509", "Gfr;": "\U0001D50A", "Hfr;": "ℌ",
	"Ifr;": "ℑ", "Jfr;": "\U0001D50D", "Kfr;": "\U0001D50E", "Lfr;": "\U0001D50F",
	"Mfr;": "\U0001D510", "Nfr;": "\U0001D511", "Ofr;": "\U0001D512", "Pfr;": "\U0001D513",
	"Qfr;": "\U0001D514", "Rfr;": "ℜ", "Sfr;": "\U0001D516", "Tfr;": "\U0001D517",
	"Ufr;": "\U0001D518", "Vfr;": "\U0001D519", "Wfr;": "\U0001D51A", "Xfr;": "\U0001D51B",
	"Yfr;": "\U0001D51C", "Zfr;": "ℨ",

	"afr;": "\U0001D51E", "bfr;": "\U0001D51F", "cfr;": "\U0001D520", "dfr;": "\U0001D521",
	"efr;": "\U0001D522", "ffr;": "\U0001D523", "gfr;": "\U0001D524", "hfr;": "\U0001D525",
	"ifr;": "\U0001D526", "jfr;": "\U0001D527", "kfr;": "\U0001D528", "lfr;": "\U0001D529",
	"mfr;": "\U0001D52A", "nfr;": "\U0001D52B", "ofr;": "\U0001D52C", "pfr;": "\U0001D52D",
	"qfr;": "\U0001D52E", "rfr;": "\U0001D52F", "sfr;": "\U0001D530", "tfr;": "\U0001D531",
	"ufr;": "\U0001D532", "vfr;": "\U0001D533", "wfr;": "\U0001D534", "xfr;": "\U0001D535",
	"yfr;": "\U0001D536", "zfr;": "\U0001D537",
}
