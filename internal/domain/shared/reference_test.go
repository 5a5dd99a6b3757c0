package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	id := int64(1)
	name := "Acme"
	blank := "   "

	assert.Equal(t, ReferenceNone, Classify(nil, nil))
	assert.Equal(t, ReferenceNone, Classify(nil, &blank))
	assert.Equal(t, ReferenceByID, Classify(&id, nil))
	assert.Equal(t, ReferenceByID, Classify(&id, &name), "identifier takes precedence")
	assert.Equal(t, ReferenceByAttributes, Classify(nil, &name))
	assert.Equal(t, "by_attributes", ReferenceByAttributes.String())
}
