// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes32Text(t *testing.T) {
	slot := BytesToBytes32([]byte("genesis-id"))
	assert.Equal(t, "0x0000000000000000000000000000000000000000000067656e657369732d6964", slot.String())

	data, err := json.Marshal(map[string]Bytes32{"id": slot})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"`+slot.String()+`"}`, string(data))

	var decoded map[string]Bytes32
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, slot, decoded["id"])

	parsed, err := ParseBytes32(slot.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, slot, parsed)

	_, err = ParseBytes32("0x00")
	assert.EqualError(t, err, "invalid length")
	assert.True(t, Bytes32{}.IsZero())
}
