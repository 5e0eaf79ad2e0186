package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Test wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot read directory", "/srv/data", DirectoryRead, nil)
	assert.Equal(t, "cannot read directory: /srv/data", fileErr.Error())
	assert.Equal(t, "/srv/data", fileErr.Path())
	assert.Equal(t, DirectoryRead, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot read directory", "/srv/data", DirectoryRead, origErr)
	assert.Equal(t, "cannot read directory: /srv/data: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	assert.True(t, IsDirectoryRead(fileErr))
	assert.False(t, IsEraseFailed(fileErr))

	var fe *FileError
	assert.True(t, As(fileErr, &fe))
	assert.Equal(t, "/srv/data", fe.Path())
}

func TestSentinelMatching(t *testing.T) {
	err := NewFileError("not a directory", "/tmp/a.txt", InvalidOperation, nil)
	assert.True(t, Is(err, ErrNotADirectory))
	assert.False(t, Is(err, ErrNotAFile))
	assert.True(t, IsInvalidOperation(Wrap(err, "enter")))
}

func TestEraseError(t *testing.T) {
	base := errors.New("no space left on device")

	openErr := NewEraseError("/tmp/secret.txt", 0, 0, base)
	assert.Equal(t, "erase failed: /tmp/secret.txt: no space left on device", openErr.Error())
	assert.Equal(t, 0, openErr.Pass())
	assert.True(t, IsEraseFailed(openErr))
	assert.False(t, IsUnlinkFailed(openErr))

	passErr := NewEraseError("/tmp/secret.txt", 2, 4096, base)
	assert.Equal(t, "erase failed during pass 2: /tmp/secret.txt: no space left on device", passErr.Error())
	assert.Equal(t, int64(4096), passErr.Written())
	assert.True(t, Is(passErr, base))

	unlinkErr := NewUnlinkError("/tmp/secret.txt", base)
	assert.True(t, IsUnlinkFailed(unlinkErr))
	assert.False(t, IsEraseFailed(unlinkErr))
	assert.Equal(t, "/tmp/secret.txt", unlinkErr.Path())

	// Classification survives wrapping
	assert.True(t, IsUnlinkFailed(Wrap(unlinkErr, "shred")))
	assert.Equal(t, UnlinkFailed, KindOf(fmt.Errorf("outer: %w", unlinkErr)))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "preview.max_lines", InvalidConfig, nil)
	assert.Equal(t, "invalid value: preview.max_lines", configErr.Error())
	assert.Equal(t, "preview.max_lines", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "preview.max_lines", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: preview.max_lines: value out of range", configErr.Error())

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", DirectoryRead, baseErr)
	configErr := NewConfigError("config error", "browser.ignore", InvalidConfig, fileErr)

	assert.Equal(t, "config error: browser.ignore: file error: /path/to/file: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	// KindOf reports the outermost classified kind
	assert.Equal(t, InvalidConfig, KindOf(configErr))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "erase_failed", EraseFailed.String())
	assert.Equal(t, "unlink_failed", UnlinkFailed.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
