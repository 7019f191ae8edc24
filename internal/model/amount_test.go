package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "zero", input: "0", want: "0"},
		{name: "plain", input: "1000000", want: "1000000"},
		{name: "max", input: MaxAmount().String(), want: MaxAmount().String()},
		{name: "above max", input: "340282366920938463463374607431768211456", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "garbage", input: "12abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAmount_SaturatingAdd(t *testing.T) {
	a := NewAmount(300)
	b := NewAmount(200)
	assert.Equal(t, "500", a.Add(b).String())

	// 加法在上限处饱和，不回绕
	saturated := MaxAmount().Add(NewAmount(1))
	assert.Equal(t, 0, saturated.Cmp(MaxAmount()))

	// 原值不受影响
	assert.Equal(t, "300", a.String())
}

func TestAmount_ZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, "0", a.String())
	assert.Equal(t, "100", a.Add(NewAmount(100)).String())
}

func TestAmount_JSON(t *testing.T) {
	type wrapper struct {
		Value Amount `json:"value"`
	}

	data, err := json.Marshal(wrapper{Value: NewAmount(12345)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"12345"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"value":"67890"}`), &decoded))
	assert.Equal(t, "67890", decoded.Value.String())

	assert.Error(t, json.Unmarshal([]byte(`{"value":"-5"}`), &decoded))
}
