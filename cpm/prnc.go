package cpm

import (
	"fmt"
	"io"
	"os"
)

// File is the part of *os.File the printer needs.  It exists so tests can
// replace the file with one which fails.
type File interface {
	io.Writer
	io.Closer
}

// opener opens the printer file.
var opener = func(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

// prnC appends the character to the file which stands in for the
// printer, creating it if necessary.
func (cpm *CPM) prnC(char uint8) error {

	f, err := opener(cpm.prnPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("prnC: Failed to open file %s:%s", cpm.prnPath, err)
	}

	_, err = f.Write([]byte{char})
	if err != nil {
		f.Close()
		return fmt.Errorf("prnC: Failed to write to file %s:%s", cpm.prnPath, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("prnC: Failed to close file %s:%s", cpm.prnPath, err)
	}

	return nil
}
