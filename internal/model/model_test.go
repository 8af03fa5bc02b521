package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElderPatchApplyKeepsUnsetFields(t *testing.T) {
	age := 78
	address := "Rua das Flores, 10"
	elder := &Elder{ID: 1, Name: "Maria", Age: &age, Address: &address}

	ElderPatch{Age: Some(79)}.Apply(elder)

	assert.Equal(t, "Maria", elder.Name)
	assert.Equal(t, 79, *elder.Age)
	assert.Equal(t, "Rua das Flores, 10", *elder.Address)
	assert.Nil(t, elder.Allergies)
}

func TestElderPatchJSONNullClears(t *testing.T) {
	age := 78
	allergies := "x"
	address := "Rua das Flores, 10"
	elder := &Elder{ID: 1, Name: "Maria", Age: &age, Allergies: &allergies, Address: &address}

	var patch ElderPatch
	require.NoError(t, json.Unmarshal([]byte(`{"age":null,"allergies":null,"notes":"walks daily"}`), &patch))
	assert.True(t, patch.Age.Set)
	assert.Nil(t, patch.Age.Value)
	assert.False(t, patch.Address.Set)

	patch.Apply(elder)
	assert.Nil(t, elder.Age)
	assert.Nil(t, elder.Allergies)
	assert.Equal(t, "Rua das Flores, 10", *elder.Address)
	assert.Equal(t, "walks daily", *elder.Notes)
	assert.Equal(t, "Maria", elder.Name)
}

func TestChecklistCheckedCount(t *testing.T) {
	c := &Checklist{Sections: []ChecklistSection{
		{Items: []ChecklistItem{{Checked: true}, {Checked: false}}},
		{Items: []ChecklistItem{{Checked: true}}},
		{},
	}}

	checked, total := c.CheckedCount()
	assert.Equal(t, 2, checked)
	assert.Equal(t, 3, total)
}

func TestAlarmClock(t *testing.T) {
	assert.Equal(t, "07:05", Alarm{Hour: 7, Minute: 5}.Clock())
}
