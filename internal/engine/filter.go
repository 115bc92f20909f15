package engine

// WithoutComments drops comment tokens from the stream.
func WithoutComments(inner TokenSource) TokenSource { return &commentFilter{inner: inner} }

type commentFilter struct{ inner TokenSource }

func (f *commentFilter) NextToken() (Token, error) {
	for {
		tok, err := f.inner.NextToken()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind == KindComment {
			continue
		}
		return tok, nil
	}
}

func (f *commentFilter) Location() int64 { return f.inner.Location() }
