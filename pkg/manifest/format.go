package manifest

import (
	"io"
)

type Format interface {
	ParseFile(io.Reader) error
}
