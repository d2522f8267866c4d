package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 33, NormalizeLimit(33))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000))
}

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 8, 29, 9, 30, 15, 123456789, time.UTC)

	cursor, err := ParseCursor(EncodeCursor(at, id))
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.True(t, cursor.CreatedAt.Equal(at))
	assert.Equal(t, id, cursor.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestParseCursorMalformed(t *testing.T) {
	_, err := ParseCursor("!!!not-base64!!!")
	assert.Error(t, err)

	_, err = ParseCursor("bm8tcGlwZQ") // decodes but has no separator
	assert.Error(t, err)
}
