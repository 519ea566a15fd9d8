package errorsUtils

import (
	"fmt"
	"runtime"
	"strings"
)

// WrapPathErr prefixes err with the calling function and line.
func WrapPathErr(err error) error {
	if err == nil {
		return nil
	}
	pc, _, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return fmt.Errorf("[%s:%d] %w", shortFuncName(fn), line, err)
}

func shortFuncName(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		return fn[i+1:]
	}
	return fn
}
