package format

// DefaultTabDisplaySize is the indent width applied when Options leaves
// TabDisplaySize unset.
const DefaultTabDisplaySize = 4

// Options configures a formatting pass. All fields are orthogonal.
type Options struct {
	// TabDisplaySize is the number of spaces per indent level when UseTabs
	// is false.
	TabDisplaySize int
	// UseTabs emits one \t per indent level instead of spaces.
	UseTabs bool
	// IndentSectionBlocks treats "begin NAME" / "end NAME" identifier pairs
	// as indentation boundaries in addition to brackets.
	IndentSectionBlocks bool
}

func (o Options) withDefaults() Options {
	if o.TabDisplaySize <= 0 {
		o.TabDisplaySize = DefaultTabDisplaySize
	}
	return o
}
