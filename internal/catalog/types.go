package catalog

// Category classifies an entry within the catalog.
// The set is closed: no extension point is provided.
type Category string

const (
	CategorySetup      Category = "SETUP"
	CategoryCore       Category = "CORE"
	CategoryMultimodal Category = "MULTIMODAL"
	CategoryAdvanced   Category = "ADVANCED"
	CategorySchemas    Category = "SCHEMAS"
)

// Valid reports whether the category is one of the fixed values.
func (c Category) Valid() bool {
	switch c {
	case CategorySetup, CategoryCore, CategoryMultimodal, CategoryAdvanced, CategorySchemas:
		return true
	}
	return false
}

// Pattern tags the execution shape of an entry's launch descriptor.
// The set is closed: no extension point is provided.
type Pattern string

const (
	PatternSync        Pattern = "SYNC"
	PatternAsync       Pattern = "ASYNC"
	PatternStream      Pattern = "STREAM"
	PatternLongPolling Pattern = "LONG_POLLING"
	PatternSetup       Pattern = "SETUP"
)

// Valid reports whether the pattern is one of the fixed values.
func (p Pattern) Valid() bool {
	switch p {
	case PatternSync, PatternAsync, PatternStream, PatternLongPolling, PatternSetup:
		return true
	}
	return false
}

// Launch describes how an entry's snippet is invoked.
type Launch struct {
	// EntryPoint is the name of the function or method the snippet calls.
	EntryPoint string `json:"entry_point" yaml:"entry_point"`

	// Required lists required parameter names in call order.
	Required []string `json:"required_params" yaml:"required_params"`

	// Optional lists optional parameter names in call order.
	Optional []string `json:"optional_params" yaml:"optional_params"`

	// Pattern is the execution-pattern tag.
	Pattern Pattern `json:"pattern" yaml:"pattern"`

	// Output labels the result type the snippet produces.
	Output string `json:"output_type" yaml:"output_type"`
}

// Entry is one documented recipe in the catalog.
//
// Entries are immutable: they are built once by the loader and only ever
// handed out by value.
type Entry struct {
	// ID uniquely identifies the entry across the catalog.
	ID string `json:"id" yaml:"id"`

	// Category is the entry's fixed classification.
	Category Category `json:"category" yaml:"category"`

	// Title is the human-readable name shown in listings.
	Title string `json:"title" yaml:"title"`

	// Description is a one-line summary.
	Description string `json:"description" yaml:"description"`

	// Model labels the target model the snippet is written against.
	Model string `json:"model" yaml:"model"`

	// Explanation is the free-text walkthrough of the recipe.
	Explanation string `json:"explanation" yaml:"explanation"`

	// Snippet is the code text.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Launch describes how the snippet is invoked.
	Launch Launch `json:"launch" yaml:"launch"`
}
