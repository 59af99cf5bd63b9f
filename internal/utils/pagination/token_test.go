package pagination_test

import (
	"testing"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entityDate := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 6, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(entityDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entityDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-a-valid-token!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	// Valid base64 but no "|" separator inside.
	_, _, err := pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}

func TestDateBasedTokenRoundTrip(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	token := pagination.EncodeDateBasedToken(date)

	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
