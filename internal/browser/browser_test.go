package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenerFunc(t *testing.T) {
	var got string
	var o Opener = OpenerFunc(func(url string) error {
		got = url
		return errors.New("no display")
	})

	err := o.Open("http://localhost:8000")

	assert.EqualError(t, err, "no display")
	assert.Equal(t, "http://localhost:8000", got)
}
