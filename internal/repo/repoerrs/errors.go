package repoerrs

import (
	"errors"
	"fmt"
)

var ErrStorageFault = errors.New("storage fault")

// StorageFaultError reports that the database could not be opened, written or read.
type StorageFaultError struct {
	Op  string
	Err error
}

func (e *StorageFaultError) Error() string {
	return fmt.Sprintf("storage fault: %s: %v", e.Op, e.Err)
}

// Message names the operation and the innermost cause, without the call
// site prefixes added on the way up.
func (e *StorageFaultError) Message() string {
	cause := e.Err
	for next := errors.Unwrap(cause); next != nil; next = errors.Unwrap(cause) {
		cause = next
	}
	return fmt.Sprintf("storage fault: %s: %v", e.Op, cause)
}

func (e *StorageFaultError) Unwrap() error {
	return e.Err
}

func (e *StorageFaultError) Is(target error) bool {
	return target == ErrStorageFault
}

func Fault(op string, err error) error {
	if err == nil {
		return nil
	}
	var sf *StorageFaultError
	if errors.As(err, &sf) {
		return err
	}
	return &StorageFaultError{Op: op, Err: err}
}
