package drvshim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scriptBus struct {
	errs []error
	n    int
}

func (b *scriptBus) Tx(addr uint16, w, r []byte) error {
	var err error
	if b.n < len(b.errs) {
		err = b.errs[b.n]
	}
	b.n++
	return err
}

func TestI2C_LatchesFirstError(t *testing.T) {
	first, second := errors.New("nack"), errors.New("arbitration lost")
	s := NewI2C(&scriptBus{errs: []error{nil, first, second, nil}})

	assert.NoError(t, s.Tx(0x27, []byte{0}, nil))
	assert.ErrorIs(t, s.Tx(0x27, []byte{0}, nil), first)
	assert.ErrorIs(t, s.Tx(0x27, []byte{0}, nil), second)
	assert.NoError(t, s.Tx(0x27, []byte{0}, nil))

	assert.ErrorIs(t, s.Take(), first)
	assert.NoError(t, s.Take())
}
