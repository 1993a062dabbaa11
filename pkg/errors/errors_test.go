package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTTPStatusClassifies(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusConflict, KindValidation},
		{http.StatusInternalServerError, KindUnknown},
		{http.StatusBadGateway, KindUnknown},
	}
	for _, tc := range cases {
		err := FromHTTPStatus(tc.status, "body")
		assert.Equal(t, tc.kind, err.Kind, "status %d", tc.status)
		assert.Equal(t, tc.status, err.Status)
	}
}

func TestFromHTTPStatusKeepsBody(t *testing.T) {
	err := FromHTTPStatus(http.StatusInternalServerError, `{"detail":"boom"}`)
	assert.Contains(t, err.Message, "500")
	assert.Contains(t, err.Message, `{"detail":"boom"}`)
}

func TestAuthActionableCarriesRemediation(t *testing.T) {
	err := AuthActionable("insert blocked", nil)
	assert.True(t, err.Actionable)
	assert.Equal(t, KindAuth, err.Kind)
	assert.Contains(t, err.Message, "trainerToken")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	wrapped := fmt.Errorf("outer: %w", Network(errors.New("dial tcp")))
	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNetwork))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Clone(ErrNotFound, "course not found")
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrValidation))
}

func TestFromErrorDefaultsToUnknown(t *testing.T) {
	err := FromError(errors.New("boom"))
	assert.Equal(t, KindUnknown, err.Kind)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestFromHTTPStatusTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxDetailBytes-1) + "é" + "tail"
	err := FromHTTPStatus(http.StatusBadRequest, body)

	detail := strings.TrimPrefix(err.Message, "backend responded 400: ")
	assert.True(t, utf8.ValidString(detail))
	assert.Equal(t, strings.Repeat("a", maxDetailBytes-1), detail)
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 10))
	assert.Equal(t, "日", truncateUTF8("日本", 4))
	assert.Equal(t, "日本", truncateUTF8("日本", 6))
	assert.Equal(t, "", truncateUTF8("日", 2))
}
