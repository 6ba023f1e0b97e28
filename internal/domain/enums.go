package domain

// ExtractionMethod identifies which parsing strategy produced a candidate.
type ExtractionMethod string

const (
	MethodStructuredSingleLine ExtractionMethod = "structured_single_line"
	MethodTwoLine              ExtractionMethod = "two_line"
	MethodMergedLineSplit      ExtractionMethod = "merged_line_split"
	MethodVendorSpecific       ExtractionMethod = "vendor_specific"
	MethodFuzzyFallback        ExtractionMethod = "fuzzy_fallback"
)

// AllExtractionMethods lists every valid extraction method.
var AllExtractionMethods = []ExtractionMethod{
	MethodStructuredSingleLine,
	MethodTwoLine,
	MethodMergedLineSplit,
	MethodVendorSpecific,
	MethodFuzzyFallback,
}

// RuleContext scopes a character correction rule to the kind of token it may
// rewrite. Context gating is what keeps corrections from spilling into
// product names.
type RuleContext string

const (
	ContextQuantity    RuleContext = "quantity"
	ContextPrice       RuleContext = "price"
	ContextProductName RuleContext = "product_name"
	ContextTotal       RuleContext = "total"
)

// ValidRuleContexts maps rule context strings to their typed value.
var ValidRuleContexts = map[string]RuleContext{
	"quantity":     ContextQuantity,
	"price":        ContextPrice,
	"product_name": ContextProductName,
	"total":        ContextTotal,
}

// LineClass is the classifier verdict for a physical receipt line.
type LineClass string

const (
	LineKeep LineClass = "keep"
	LineSkip LineClass = "skip"
)
