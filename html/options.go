package html

// Options configures one HTML parse.
type Options struct {
	// EnableScriptParsing gates embedded-parser dispatch for <script>
	// content. When false, script bodies stay plain Text even if a parser is
	// registered for them.
	EnableScriptParsing bool

	// EnableStyleParsing gates embedded-parser dispatch for <style> content.
	EnableStyleParsing bool

	// Embedded maps raw-text elements to external parsers. Absence of a
	// registration is configuration, not an error: unregistered content is
	// retained as plain Text silently.
	Embedded map[EmbeddedKey]EmbeddedParser

	// Policy is the error-tolerance table. The zero Policy means
	// DefaultPolicy.
	Policy Policy
}

// DefaultOptions enables script and style dispatch and uses DefaultPolicy.
func DefaultOptions() Options {
	return Options{
		EnableScriptParsing: true,
		EnableStyleParsing:  true,
		Policy:              DefaultPolicy(),
	}
}

// normalize fills in the zero-value gaps so the rest of the parser can use
// the options without nil checks.
func (o Options) normalize() Options {
	if o.Policy.AutoClose == nil && o.Policy.OptionalClose == nil &&
		o.Policy.Void == nil && o.Policy.RawText == nil {
		o.Policy = DefaultPolicy()
	}
	return o
}
