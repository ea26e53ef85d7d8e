package adocerr_test

import (
	"errors"
	"testing"

	"github.com/jlrickert/adoc/internal/adocerr"
	"github.com/stretchr/testify/require"
)

func TestDuplicateIDError_IsSentinel(t *testing.T) {
	t.Parallel()
	err := adocerr.NewDuplicateIDError("intro")
	require.True(t, errors.Is(err, adocerr.ErrDuplicateID))
	require.True(t, adocerr.IsDuplicateID(err))
	require.Contains(t, err.Error(), "intro")
}

func TestDuplicateIDError_NotUnterminatedQuotedString(t *testing.T) {
	t.Parallel()
	err := adocerr.NewDuplicateIDError("intro")
	require.False(t, adocerr.IsUnterminatedQuotedString(err))
}

func TestUnterminatedQuotedStringError_IsSentinel(t *testing.T) {
	t.Parallel()
	err := adocerr.NewUnterminatedQuotedStringError('"')
	require.True(t, errors.Is(err, adocerr.ErrUnterminatedQuotedString))
	require.True(t, adocerr.IsUnterminatedQuotedString(err))
}

func TestIsDuplicateID_NilSafe(t *testing.T) {
	t.Parallel()
	require.False(t, adocerr.IsDuplicateID(nil))
	require.False(t, adocerr.IsUnterminatedQuotedString(nil))
}

func TestDuplicateIDError_WrappedByFmt(t *testing.T) {
	t.Parallel()
	inner := adocerr.NewDuplicateIDError("dup")
	wrapped := errors.Join(errors.New("context"), inner)
	require.True(t, errors.Is(wrapped, adocerr.ErrDuplicateID))
}
