package pos

import "fmt"

// TagsetLoadError reports a missing or malformed tagset definition file.
type TagsetLoadError struct {
	Path string
	Err  error
}

func (e *TagsetLoadError) Error() string {
	return fmt.Sprintf("tagset %q could not be loaded: %v", e.Path, e.Err)
}

func (e *TagsetLoadError) Unwrap() error {
	return e.Err
}

// TagNotFoundError reports a tag symbol that is absent from the tagset.
type TagNotFoundError struct {
	Symbol string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag symbol %q not found in tagset", e.Symbol)
}

// ModelMismatchError reports a persisted model whose tag cardinality or tag
// ordering disagrees with the tagset it is being loaded against.
type ModelMismatchError struct {
	Reason string
}

func (e *ModelMismatchError) Error() string {
	return fmt.Sprintf("model does not match tagset: %s", e.Reason)
}

// ModelFileIOError reports a missing, unreadable or unwritable model file.
type ModelFileIOError struct {
	Path string
	Err  error
}

func (e *ModelFileIOError) Error() string {
	return fmt.Sprintf("model file %q: %v", e.Path, e.Err)
}

func (e *ModelFileIOError) Unwrap() error {
	return e.Err
}

// CorpusDirectoryError reports a corpus path that is not a readable directory.
type CorpusDirectoryError struct {
	Path string
	Err  error
}

func (e *CorpusDirectoryError) Error() string {
	return fmt.Sprintf("corpus directory %q: %v", e.Path, e.Err)
}

func (e *CorpusDirectoryError) Unwrap() error {
	return e.Err
}
