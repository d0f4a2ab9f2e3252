package acf

// Format parses src and returns it in the canonical layout written by
// Marshal. Duplicate keys are collapsed to their last value. Options
// apply to both steps, so MaxDepth and Indent may be combined.
func Format(src []byte, opts ...Option) ([]byte, error) {
	doc, err := Parse(src, opts...)
	if err = FatalOnly(err); err != nil {
		return nil, err
	}
	return Marshal(doc, opts...)
}
