package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityTypeValid(t *testing.T) {
	for _, et := range EntityTypes {
		assert.True(t, et.Valid(), string(et))
	}

	assert.False(t, EntityType("city").Valid(), "labels are case-sensitive")
	assert.False(t, EntityType("Museum").Valid())
	assert.False(t, EntityType("").Valid())
	assert.False(t, EntityType("City; DROP TABLE place").Valid())
}

func TestRelationTypeValid(t *testing.T) {
	for _, rt := range RelationTypes {
		assert.True(t, rt.Valid(), string(rt))
	}

	assert.False(t, RelationType("near").Valid())
	assert.False(t, RelationType("VISITED").Valid())
	assert.False(t, RelationType("").Valid())
}
