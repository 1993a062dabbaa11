package backend

import (
	"database/sql"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

func TestClassifySecondary(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind appErrors.Kind
	}{
		{"no rows", fmt.Errorf("get course: %w", sql.ErrNoRows), appErrors.KindNotFound},
		{"rls", fmt.Errorf("insert course: %w", &pq.Error{Code: "42501"}), appErrors.KindAuth},
		{"unique", &pq.Error{Code: "23505"}, appErrors.KindValidation},
		{"fk", &pq.Error{Code: "23503"}, appErrors.KindValidation},
		{"syntax", &pq.Error{Code: "42601"}, appErrors.KindUnknown},
		{"dial", &net.OpError{Op: "dial", Err: fmt.Errorf("refused")}, appErrors.KindNetwork},
		{"typed", appErrors.Clone(appErrors.ErrNotFound, "gone"), appErrors.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, ClassifySecondary(tc.err).Kind)
		})
	}
	assert.Nil(t, ClassifySecondary(nil))
}
