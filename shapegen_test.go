package shapegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	e := FormatError(GenErrors+1, "bad %s", "package")
	assert.Equal(t, "bad package", e.Message)
	assert.True(t, HasCode(e, GenErrors+1))
	assert.False(t, HasCode(e, GenErrors+2))
	assert.True(t, HasCode(fmt.Errorf("generate: %w", e), GenErrors+1))
	assert.False(t, HasCode(errors.New("plain"), GenErrors+1))
	assert.False(t, HasCode(nil, GenErrors+1))
}
