package hashprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p := New()
	assert.Equal(t, SHA256, p.HashName())
	assert.Equal(t, 32, p.HMACKeySize())
	assert.Equal(t, 32, p.SaltSize())

	h := p.NewHMAC([]byte("0123456789abcdef0123456789abcdef"))
	assert.NotNil(t, h)
	assert.Equal(t, 32, h.Size())
}
