package binrw

// ExpectValue returns a ValueError unless got equals want
func ExpectValue[T comparable](field string, want, got T) error {
	if got != want {
		return valueErrf(field, want, got)
	}
	return nil
}

// ReadExpect decodes a field that must hold a constant, such as a magic
// number or version tag. r is advanced only when the value matches.
func ReadExpect[T comparable, PT Decoder[T, NoArgs]](r *Reader, field string, want T) error {
	c := *r
	got, err := Read[T, NoArgs, PT](&c, NoArgs{})
	if err != nil {
		return err
	}
	if err := ExpectValue(field, want, got); err != nil {
		return err
	}
	*r = c
	return nil
}
