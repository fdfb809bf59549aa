package multibody

import "github.com/pkg/errors"

// Sentinel error kinds. Every failure returned by this package wraps one of
// these, so callers can classify with errors.Is.
var (
	// ErrStructuralMismatch indicates construction input that cannot form a
	// valid kinematic tree: inconsistent array lengths, out-of-range
	// connectivity indices, duplicate ids, or a graph that is not a rooted
	// tree.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrIndexOutOfRange is returned by the checked accessors when a body or
	// joint index falls outside the stored sequences.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownID is returned by the checked id lookups when no body or
	// joint carries the requested id.
	ErrUnknownID = errors.New("unknown id")
)

func newLengthMismatchError(field string, got, want int) error {
	return errors.Wrapf(ErrStructuralMismatch, "%s has length %d, expected %d", field, got, want)
}

func newBadIndexError(field string, num, value, nrBodies int) error {
	return errors.Wrapf(ErrStructuralMismatch,
		"%s[%d] is %d, not a valid body index (%d bodies)", field, num, value, nrBodies)
}

func newDuplicateIDError(kind string, id, first, dup int) error {
	return errors.Wrapf(ErrStructuralMismatch,
		"duplicate %s id %d at indices %d and %d", kind, id, first, dup)
}

func newNotATreeError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrStructuralMismatch, format, args...)
}

func newIndexOutOfRangeError(kind string, num, length int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "%s index %d outside [0,%d)", kind, num, length)
}

func newUnknownIDError(kind string, id int) error {
	return errors.Wrapf(ErrUnknownID, "no %s with id %d", kind, id)
}
