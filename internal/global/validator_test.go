package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Name string `json:"dashboardName" validate:"notblank"`
	ID   string `json:"id" validate:"omitempty,positive_id"`
}

func TestValidate_NotBlank(t *testing.T) {
	assert.NoError(t, Validate.Struct(sampleInput{Name: "sales"}))
	assert.Error(t, Validate.Struct(sampleInput{Name: ""}))
	assert.Error(t, Validate.Struct(sampleInput{Name: "   "}))
}

func TestValidate_PositiveID(t *testing.T) {
	cases := map[string]bool{
		"1":                    true,
		"42":                   true,
		"007":                  true,
		"0":                    false,
		"000":                  false,
		"-1":                   false,
		"1.5":                  false,
		"../etc":               false,
		"12abc":                false,
		"99999999999999999999": false,
	}
	for id, ok := range cases {
		err := Validate.Struct(sampleInput{Name: "x", ID: id})
		if ok {
			assert.NoError(t, err, id)
		} else {
			assert.Error(t, err, id)
		}
	}
}
