package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetrievalErrorMessage(t *testing.T) {
	err := &RetrievalError{Status: 404, Reason: "street view request failed"}
	require.Contains(t, err.Error(), "status 404")

	noStatus := &RetrievalError{Reason: "address not found"}
	require.NotContains(t, noStatus.Error(), "status")
}

func TestReportErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &ReportError{Path: "reports/x.pdf", Err: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "reports/x.pdf")
}
