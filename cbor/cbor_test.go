// Copyright 2025 Midgard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStructAsArray struct {
	StructAsArray
	Id    uint
	Name  string
	Value uint64
}

func TestEncodeStructAsArray(t *testing.T) {
	data, err := Encode(&testStructAsArray{Id: 2, Name: "pool", Value: 42})
	require.NoError(t, err)
	// [2, "pool", 42]
	assert.Equal(t, "830264706f6f6c182a", hex.EncodeToString(data))
}

func TestEncodeDeterministic(t *testing.T) {
	m := map[string]uint64{"b": 2, "a": 1, "c": 3}
	first, err := Encode(m)
	require.NoError(t, err)
	for range 10 {
		again, err := Encode(m)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDecodeStructAsArray(t *testing.T) {
	data, err := hex.DecodeString("830264706f6f6c182a")
	require.NoError(t, err)
	var dest testStructAsArray
	n, err := Decode(data, &dest)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint(2), dest.Id)
	assert.Equal(t, "pool", dest.Name)
	assert.Equal(t, uint64(42), dest.Value)
}

func TestDecodeIdFromList(t *testing.T) {
	testCases := []struct {
		name    string
		cborHex string
		wantId  int
		wantErr bool
	}{
		{name: "SimpleList", cborHex: "820105", wantId: 1},
		{name: "ZeroId", cborHex: "8100", wantId: 0},
		{name: "EmptyList", cborHex: "80", wantErr: true},
		{name: "LargeId", cborHex: "8218ff05", wantId: 255},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := hex.DecodeString(tc.cborHex)
			require.NoError(t, err)
			id, err := DecodeIdFromList(data)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantId, id)
		})
	}
}

func TestDecodeById(t *testing.T) {
	// [2, "pool", 42]
	data, err := hex.DecodeString("830264706f6f6c182a")
	require.NoError(t, err)

	ret, err := DecodeById(data, map[int]any{2: &testStructAsArray{}})
	require.NoError(t, err)
	decoded, ok := ret.(*testStructAsArray)
	require.True(t, ok)
	assert.Equal(t, uint(2), decoded.Id)
	assert.Equal(t, "pool", decoded.Name)

	_, err = DecodeById(data, map[int]any{1: &testStructAsArray{}})
	assert.ErrorContains(t, err, "unknown ID")
}

func TestListLength(t *testing.T) {
	data, err := Encode([]uint{1, 2, 3})
	require.NoError(t, err)
	length, err := ListLength(data)
	require.NoError(t, err)
	assert.Equal(t, 3, length)
}

type testStoreCbor struct {
	StructAsArray
	DecodeStoreCbor
	Id uint
}

func (s *testStoreCbor) UnmarshalCBOR(data []byte) error {
	if err := DecodeGeneric(data, s); err != nil {
		return err
	}
	s.SetCbor(data)
	return nil
}

func TestDecodeStoreCbor(t *testing.T) {
	raw, err := Encode([]uint{7})
	require.NoError(t, err)
	var dest testStoreCbor
	_, err = Decode(raw, &dest)
	require.NoError(t, err)
	assert.Equal(t, uint(7), dest.Id)
	assert.Equal(t, raw, dest.Cbor())
}
