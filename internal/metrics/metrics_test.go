package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(RowsGenerated.WithLabelValues("cut_list"))
	successes := testutil.ToFloat64(GenerationsTotal.WithLabelValues("compute", StatusSuccess))

	RecordGeneration(Generation{Source: "compute", Status: StatusSuccess, Duration: time.Millisecond, Panels: 14, Doors: 2, Hardware: 5})

	assert.Equal(t, before+14, testutil.ToFloat64(RowsGenerated.WithLabelValues("cut_list")))
	assert.Equal(t, successes+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("compute", StatusSuccess)))
}

func TestRecordGenerationErrorSkipsRows(t *testing.T) {
	before := testutil.ToFloat64(RowsGenerated.WithLabelValues("door_schedule"))
	failures := testutil.ToFloat64(GenerationsTotal.WithLabelValues("project", StatusError))

	RecordGeneration(Generation{Source: "project", Status: StatusError, Doors: 9})

	assert.Equal(t, before, testutil.ToFloat64(RowsGenerated.WithLabelValues("door_schedule")))
	assert.Equal(t, failures+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("project", StatusError)))
}

func TestSetGrandTotal(t *testing.T) {
	SetGrandTotal("7", 3305)
	assert.Equal(t, 3305.0, testutil.ToFloat64(GrandTotal.WithLabelValues("7")))
}
