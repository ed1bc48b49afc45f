package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "clients", ErrorTypeTimeout))

	RecordDBQuery("select", "clients", 5*time.Millisecond, nil)
	RecordDBQuery("select", "clients", 5*time.Millisecond, fmt.Errorf("wrap: %w", context.DeadlineExceeded))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "clients", ErrorTypeTimeout))
	if after-before != 1 {
		t.Errorf("expected one timeout error recorded, got %v", after-before)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{sql.ErrNoRows, ErrorTypeNoRows},
		{context.Canceled, ErrorTypeCanceled},
		{errors.New("boom"), ErrorTypeOther},
	}
	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Errorf("classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordReportFallback(t *testing.T) {
	before := testutil.ToFloat64(ReportFallbacks.WithLabelValues("revenue"))
	RecordReportFallback("revenue")
	if got := testutil.ToFloat64(ReportFallbacks.WithLabelValues("revenue")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}
