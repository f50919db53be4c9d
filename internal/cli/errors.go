package cli

import "fmt"

type invalidValueError struct {
	name    string
	value   string
	allowed string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %q (want %s)", e.name, e.value, e.allowed)
}

type letterError struct {
	path string
	err  error
}

func (e letterError) Error() string {
	return fmt.Sprintf("letter %s: %v", e.path, e.err)
}

func (e letterError) Unwrap() error { return e.err }

func errLetter(path string, err error) error {
	return letterError{path: path, err: err}
}
