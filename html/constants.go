package html

import "github.com/gohtml5/parser/dom"

// formattingElements is the set of tags tracked on the active-formatting
// list (spec.md §4.4.5), the HTML5 "formatting elements" in §12.2.4.3.
var formattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true,
	"font": true, "i": true, "nobr": true, "s": true, "small": true,
	"strike": true, "strong": true, "tt": true, "u": true,
}

// specialElements drives the adoption agency's "furthest block" search
// (spec.md §4.4.4) — elements with unusual content-model behavior per
// HTML5 §12.2.4.3 "special".
var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true,
	"dl": true, "dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hgroup": true, "hr": true, "html": true,
	"iframe": true, "img": true, "input": true, "keygen": true, "li": true,
	"link": true, "listing": true, "main": true, "marquee": true, "menu": true,
	"meta": true, "nav": true, "noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true, "plaintext": true,
	"pre": true, "script": true, "section": true, "select": true, "source": true,
	"style": true, "summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "textarea": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true, "wbr": true, "xmp": true,
}

// headingElements close an open heading of any level when a new one opens
// (spec.md §4.4.7's notable in-body handlers).
var headingElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// impliedEndTagNames is the set popped by "generate implied end tags"
// (HTML5 §12.2.4.3), used before inserting list items, table cells, etc.
var impliedEndTagNames = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// impliedEndTagNamesThorough additionally includes the table-structure
// elements popped by generateImpliedEndTagsThorough, which runs with no
// exception and is used only by the </template> end tag.
var impliedEndTagNamesThorough = map[string]bool{
	"caption": true, "colgroup": true, "dd": true, "dt": true, "li": true,
	"optgroup": true, "option": true, "p": true, "rb": true, "rp": true,
	"rt": true, "rtc": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true,
}

// scopeKind selects a scope predicate's terminator set (spec.md §4.4.3).
type scopeKind int

const (
	defaultScope scopeKind = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

// scopeTerminators returns the tag-name terminator set for a scope flavor.
// Namespace-qualified foreign-content integration points are handled
// separately in hasElementInScope.
func scopeTerminators(kind scopeKind) map[string]bool {
	switch kind {
	case listItemScope:
		return scopeTerminatorsListItem
	case buttonScope:
		return scopeTerminatorsButton
	case tableScope:
		return scopeTerminatorsTable
	case selectScope:
		return scopeTerminatorsSelect
	default:
		return scopeTerminatorsDefault
	}
}

var scopeTerminatorsDefault = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true, "template": true,
}

var scopeTerminatorsListItem = union(scopeTerminatorsDefault, map[string]bool{
	"ol": true, "ul": true,
})

var scopeTerminatorsButton = union(scopeTerminatorsDefault, map[string]bool{
	"button": true,
})

var scopeTerminatorsTable = map[string]bool{
	"html": true, "table": true, "template": true,
}

// scopeTerminatorsSelect is inverted: every name EXCEPT these two counts as
// a terminator: "select" scope stops expanding outward from optgroup/option.
var scopeTerminatorsSelect = map[string]bool{
	"optgroup": true, "option": true,
}

func union(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

// foreignScopeTerminators names the namespace/local-name pairs that count
// as scope terminators even under the default/list-item/button scopes
// (spec.md §4.4.3's "foreign integration points").
type nsName struct {
	ns, name string
}

var foreignScopeTerminators = map[nsName]bool{
	{dom.NamespaceMathML, "mi"}:            true,
	{dom.NamespaceMathML, "mo"}:            true,
	{dom.NamespaceMathML, "mn"}:            true,
	{dom.NamespaceMathML, "ms"}:            true,
	{dom.NamespaceMathML, "mtext"}:         true,
	{dom.NamespaceMathML, "annotation-xml"}: true,
	{dom.NamespaceSVG, "foreignObject"}:    true,
	{dom.NamespaceSVG, "desc"}:             true,
	{dom.NamespaceSVG, "title"}:            true,
}

// htmlIntegrationPoints and mathMLTextIntegrationPoints gate foreign-content
// dispatch (spec.md §4.4.1, GLOSSARY "Integration point").
var htmlIntegrationPoints = map[nsName]bool{
	{dom.NamespaceSVG, "foreignObject"}: true,
	{dom.NamespaceSVG, "desc"}:          true,
	{dom.NamespaceSVG, "title"}:         true,
}

var mathMLTextIntegrationPoints = map[nsName]bool{
	{dom.NamespaceMathML, "mi"}:    true,
	{dom.NamespaceMathML, "mo"}:    true,
	{dom.NamespaceMathML, "mn"}:    true,
	{dom.NamespaceMathML, "ms"}:    true,
	{dom.NamespaceMathML, "mtext"}: true,
}

// foreignBreakoutElements is the start-tag set that pops out of foreign
// content back to HTML parsing rules (spec.md §4.4.6).
var foreignBreakoutElements = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nobr": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

// svgTagNameAdjustments restores camelCase SVG tag names the tokenizer
// would otherwise have lowercased (spec.md §4.4.6).
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":          "altGlyphDef",
	"altglyphitem":         "altGlyphItem",
	"animatecolor":         "animateColor",
	"animatemotion":        "animateMotion",
	"animatetransform":     "animateTransform",
	"clippath":             "clipPath",
	"feblend":              "feBlend",
	"fecolormatrix":        "feColorMatrix",
	"fecomponenttransfer":  "feComponentTransfer",
	"fecomposite":          "feComposite",
	"feconvolvematrix":     "feConvolveMatrix",
	"fediffuselighting":    "feDiffuseLighting",
	"fedisplacementmap":    "feDisplacementMap",
	"fedistantlight":       "feDistantLight",
	"fedropshadow":         "feDropShadow",
	"feflood":              "feFlood",
	"fefunca":              "feFuncA",
	"fefuncb":              "feFuncB",
	"fefuncg":              "feFuncG",
	"fefuncr":              "feFuncR",
	"fegaussianblur":       "feGaussianBlur",
	"feimage":              "feImage",
	"femerge":              "feMerge",
	"femergenode":          "feMergeNode",
	"femorphology":         "feMorphology",
	"feoffset":             "feOffset",
	"fepointlight":         "fePointLight",
	"fespecularlighting":   "feSpecularLighting",
	"fespotlight":          "feSpotLight",
	"fetile":               "feTile",
	"feturbulence":         "feTurbulence",
	"foreignobject":        "foreignObject",
	"glyphref":             "glyphRef",
	"lineargradient":       "linearGradient",
	"radialgradient":       "radialGradient",
	"textpath":             "textPath",
}

// svgAttributeAdjustments restores camelCase SVG attribute names
// (spec.md §4.4.6).
var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// mathMLAttributeAdjustments restores the single MathML attribute casing
// exception (spec.md §4.4.6).
var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// foreignAttrAdjustment records a foreign (xlink/xml/xmlns) attribute's
// namespace, prefix, and local name after adjustment (spec.md §4.4.6).
type foreignAttrAdjustment struct {
	Namespace string
	Prefix    string
	LocalName string
}

var foreignAttributeAdjustments = map[string]foreignAttrAdjustment{
	"xlink:actuate": {dom.NamespaceHTML, "", ""}, // placeholder, overwritten below
}

func init() {
	const xlinkNS = "http://www.w3.org/1999/xlink"
	const xmlNS = "http://www.w3.org/XML/1998/namespace"
	const xmlnsNS = "http://www.w3.org/2000/xmlns/"

	foreignAttributeAdjustments = map[string]foreignAttrAdjustment{
		"xlink:actuate": {xlinkNS, "xlink", "actuate"},
		"xlink:arcrole": {xlinkNS, "xlink", "arcrole"},
		"xlink:href":    {xlinkNS, "xlink", "href"},
		"xlink:role":    {xlinkNS, "xlink", "role"},
		"xlink:show":    {xlinkNS, "xlink", "show"},
		"xlink:title":   {xlinkNS, "xlink", "title"},
		"xlink:type":    {xlinkNS, "xlink", "type"},
		"xml:lang":      {xmlNS, "xml", "lang"},
		"xml:space":     {xmlNS, "xml", "space"},
		"xmlns":         {xmlnsNS, "", "xmlns"},
		"xmlns:xlink":   {xmlnsNS, "xmlns", "xlink"},
	}
}

// tableFosterTargets is the set of current-node tag names that engage
// foster parenting for character/element insertion (spec.md §4.4.2).
var tableFosterTargets = map[string]bool{
	"table": true, "tbody": true, "tfoot": true, "thead": true, "tr": true,
}

// selectAllowedElements is the curated set the source permits inside an
// open <select> beyond options/optgroups (spec.md §9 Open Questions: "the
// source allows HTML content model in <select> for a curated element set
// beyond the spec; mirror this set exactly").
var selectAllowedElements = map[string]bool{
	"p": true, "div": true, "button": true, "b": true, "i": true, "u": true,
	"hr": true, "br": true, "span": true,
}

// rawtextSwitches is the HTML-namespace start-tag set that forces RAWTEXT
// with a remembered end-tag sentinel (spec.md §4.3).
var rawtextSwitches = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true,
}

// rcdataSwitches is the HTML-namespace start-tag set that forces RCDATA
// (spec.md §4.3).
var rcdataSwitches = map[string]bool{
	"title": true, "textarea": true,
}
