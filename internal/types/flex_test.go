package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`12.5`, 12.5, false},
		{`"4500"`, 4500, false},
		{`" 7.25 "`, 7.25, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v struct {
				N types.FlexFloat64 `json:"n"`
			}
			err := json.Unmarshal([]byte(`{"n":`+tt.in+`}`), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.N.Float64())
		})
	}
}

func TestFlexUint64(t *testing.T) {
	var v struct {
		A types.FlexUint64  `json:"a"`
		B types.FlexUint64  `json:"b"`
		C *types.FlexUint64 `json:"c"`
		D *types.FlexUint64 `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "42", "c": "", "d": null}`), &v))
	assert.Equal(t, uint64(3), v.A.Uint64())
	assert.Equal(t, uint64(42), v.B.Uint64())
	assert.Nil(t, v.C.UintPtr(), "empty selection means no reference")
	assert.Nil(t, v.D.UintPtr())

	id := types.FlexUint64(9)
	require.NotNil(t, id.UintPtr())
	assert.Equal(t, uint(9), *id.UintPtr())

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `9`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"-1"`), &id))
}

func TestFlexList(t *testing.T) {
	var single, many types.FlexList[string]
	require.NoError(t, json.Unmarshal([]byte(`"PRP-000001"`), &single))
	require.NoError(t, json.Unmarshal([]byte(`["PRP-000001", "PRP-000002"]`), &many))
	assert.Equal(t, []string{"PRP-000001"}, single.Slice())
	assert.Equal(t, []string{"PRP-000001", "PRP-000002"}, many.Slice())

	var ids types.FlexList[types.FlexUint64]
	require.NoError(t, json.Unmarshal([]byte(`[1, "2"]`), &ids))
	assert.Equal(t, []types.FlexUint64{1, 2}, ids.Slice())
}

func TestFlexDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-05"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{`"2024-03-05T10:30:00+02:00"`, time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)},
		{`"2024-03-05 10:30:00"`, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{`"2024-03-05T10:30"`, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{`""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d types.FlexDate
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}

	var d types.FlexDate
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240305`), &d))
}

func TestCustomError(t *testing.T) {
	err := types.NewError(404, "not_found", "tenant %d", 7)
	assert.Equal(t, "404: tenant 7 [type: not_found]", err.Error())
}
