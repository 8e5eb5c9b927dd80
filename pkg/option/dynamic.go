package option

// Enumerator produces the live candidate set for a dynamic option. It is
// invoked on every match and completion query, so implementations backed
// by slow sources should cache internally.
type Enumerator interface {
	Enumerate(o *Option) map[string]string
}

// EnumeratorFunc adapts a function to the Enumerator interface.
type EnumeratorFunc func(o *Option) map[string]string

func (f EnumeratorFunc) Enumerate(o *Option) map[string]string { return f(o) }

// ListEnumerator adapts a function returning a plain value list.
type ListEnumerator func(o *Option) []string

func (f ListEnumerator) Enumerate(o *Option) map[string]string {
	values := map[string]string{}
	for _, v := range f(o) {
		values[v] = ""
	}
	return values
}
