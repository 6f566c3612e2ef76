package scaffold

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
)

const probePrefix = ".c1assist-probe-"

// ProbeWritable verifies that location exists, is a directory, and accepts a
// new file. The probe file is removed before returning.
func ProbeWritable(location string) (err error) {
	info, err := os.Stat(location)
	if err != nil {
		return errors.NewNoWriteAccess(location, err)
	}
	if !info.IsDir() {
		return errors.NewNoWriteAccess(location, fmt.Errorf("not a directory"))
	}

	probePath := filepath.Join(location, probeName())
	f, err := os.OpenFile(probePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return errors.NewNoWriteAccess(location, err)
	}
	defer func() {
		if rmErr := os.Remove(probePath); rmErr != nil && err == nil {
			err = errors.NewNoWriteAccess(location, rmErr)
		}
	}()

	if _, werr := f.WriteString("probe"); werr != nil {
		f.Close()
		return errors.NewNoWriteAccess(location, werr)
	}
	if cerr := f.Close(); cerr != nil {
		return errors.NewNoWriteAccess(location, cerr)
	}

	log.Debug().Str("location", location).Msg("write access confirmed")
	return nil
}

func probeName() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return probePrefix + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String() + ".tmp"
}
