package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedRequest struct {
	Method    string `json:"refund_method" binding:"required,refund_method"`
	Condition string `json:"condition" binding:"omitempty,item_condition"`
	State     string `form:"state" binding:"omitempty,refund_state"`
	Reason    string `json:"reason" binding:"max=5"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator()

	valid := validatedRequest{Method: "store_credit", Condition: "like_new", State: "approved"}
	require.NoError(t, binding.Validator.ValidateStruct(&valid))

	invalid := validatedRequest{Method: "cheque", Condition: "torn", State: "archived", Reason: "too long"}
	err := binding.Validator.ValidateStruct(&invalid)
	require.Error(t, err)

	details := ValidationDetails(err)
	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Contains(t, fields["refund_method"], "store_credit")
	assert.Contains(t, fields["condition"], "like_new")
	assert.Equal(t, "Unknown refund state", fields["state"])
	assert.Equal(t, "Must be at most 5 characters", fields["reason"])
}

func TestValidationDetails_NotValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
