package kernel_test

import (
	"testing"

	"kitchenboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID_ProducesUniqueValidIDs(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	require.NoError(t, second.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, first.String())
	assert.False(t, first.IsEqual(second))
}

func TestUUIDFromString(t *testing.T) {
	canonical := "7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8"

	t.Run("ParsesCanonicalForm", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)

		require.NoError(t, err)
		assert.Equal(t, canonical, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("ParsesAlternateEncodings", func(t *testing.T) {
		// google/uuid accepts braced, urn-prefixed and unhyphenated forms;
		// all normalize to the canonical string.
		for _, input := range []string{
			"{7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8}",
			"urn:uuid:7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8",
			"7f9c24e83b124fef91b000a3c2d9d1a8",
		} {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("RejectsMalformedInput", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"7f9c24e8-3b12-4fef-91b0",
			"7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8-tail",
			"zzzc24e8-3b12-4fef-91b0-00a3c2d9d1a8",
		} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, "input %q", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("RoundTripsThroughBytes", func(t *testing.T) {
		original, err := kernel.UUIDFromString("7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8")
		require.NoError(t, err)

		raw := original.Bytes()
		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("RejectsWrongLength", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x7f, 0x9c, 0x24})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("RejectsNilUUIDBytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	a, err := kernel.UUIDFromString("7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8")
	require.NoError(t, err)
	b, err := kernel.UUIDFromString("7f9c24e8-3b12-4fef-91b0-00a3c2d9d1a8")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.True(t, b.IsEqual(a))
	assert.False(t, a.IsEqual(kernel.NewUUID()))

	var zero, otherZero kernel.UUID
	assert.True(t, zero.IsEqual(otherZero))
	assert.False(t, zero.IsEqual(a))
}

func TestUUID_Validate(t *testing.T) {
	assert.NoError(t, kernel.NewUUID().Validate())

	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())

	nilID, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, nilID.Validate())
}

func TestUUID_BytesCopyIsIndependent(t *testing.T) {
	original := kernel.NewUUID()
	originalString := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, originalString, original.String())
	assert.NotEqual(t, original.String(), uuid.UUID(raw).String())
}
