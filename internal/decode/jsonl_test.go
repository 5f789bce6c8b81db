package decode

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcragent/internal/logger"
	"dcragent/internal/report"
)

func collect(reports *[]*report.Report) ReportFunc {
	return func(ctx context.Context, r *report.Report) error {
		*reports = append(*reports, r)
		return nil
	}
}

func TestJSONLDecoder_DecodeStream(t *testing.T) {
	input := `{"category":"Tsunami","header":"Tsunami Warning","body":"Tsunami Warning\nIwate","localities":["Iwate"]}

{"category":"SeismicIntensity","classification":7,"header":"Drill","body":"Drill"}
`
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	err := d.DecodeStream(context.Background(), strings.NewReader(input), collect(&reports))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	first := reports[0]
	assert.Equal(t, report.CategoryTsunami, first.Category)
	assert.Equal(t, "Tsunami Warning", first.Header)
	assert.Equal(t, []string{"Iwate"}, first.Localities)
	assert.True(t, first.Complete, "completeness defaults to true")
	assert.Contains(t, first.Raw, `"category":"Tsunami"`)

	second := reports[1]
	assert.Equal(t, report.CategorySeismicIntensity, second.Category)
	assert.True(t, second.IsTraining())
}

func TestJSONLDecoder_ExplicitIncomplete(t *testing.T) {
	input := `{"category":"NankaiTroughEarthquake","complete":false,"header":"Nankai","body":"Nankai part 1"}` + "\n"
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	require.NoError(t, d.DecodeStream(context.Background(), strings.NewReader(input), collect(&reports)))
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Complete)
}

func TestJSONLDecoder_UnknownCategory(t *testing.T) {
	input := `{"category":"SolarFlare","header":"x","body":"x"}` + "\n"
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	require.NoError(t, d.DecodeStream(context.Background(), strings.NewReader(input), collect(&reports)))
	require.Len(t, reports, 1)
	assert.Equal(t, report.CategoryUnknown, reports[0].Category)
}

func TestJSONLDecoder_SkipsMalformedLines(t *testing.T) {
	input := `{"category":"Tsunami","header":"a","body":"a"}
{this is not json
{"category":"Weather","header":"b","body":"b"}
`
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	err := d.DecodeStream(context.Background(), strings.NewReader(input), collect(&reports))
	require.NoError(t, err, "a bad line must not cost the stream")
	require.Len(t, reports, 2)
	assert.Equal(t, report.CategoryTsunami, reports[0].Category)
	assert.Equal(t, report.CategoryWeather, reports[1].Category)
}

func TestJSONLDecoder_CallbackErrorIsFatal(t *testing.T) {
	input := `{"category":"Tsunami","header":"a","body":"a"}` + "\n"
	d := NewJSONLDecoder(logger.NopLogger())

	sentinel := errors.New("pipeline broken")
	err := d.DecodeStream(context.Background(), strings.NewReader(input), func(ctx context.Context, r *report.Report) error {
		return sentinel
	})

	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.ErrorIs(t, err, sentinel)
}

func TestJSONLDecoder_StreamError(t *testing.T) {
	sentinel := errors.New("pipe burst")
	src := io.MultiReader(
		strings.NewReader(`{"category":"Tsunami","header":"a","body":"a"}`+"\n"),
		iotest.ErrReader(sentinel),
	)
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	err := d.DecodeStream(context.Background(), src, collect(&reports))

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.ErrorIs(t, err, sentinel)
	assert.Len(t, reports, 1, "reports before the failure are delivered")
}

func TestJSONLDecoder_EOF(t *testing.T) {
	d := NewJSONLDecoder(logger.NopLogger())

	var reports []*report.Report
	err := d.DecodeStream(context.Background(), strings.NewReader(""), collect(&reports))

	assert.NoError(t, err, "EOF is a normal end of stream")
	assert.Empty(t, reports)
}

func TestJSONLDecoder_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := `{"category":"Tsunami","header":"a","body":"a"}` + "\n"
	d := NewJSONLDecoder(logger.NopLogger())

	err := d.DecodeStream(ctx, strings.NewReader(input), collect(&[]*report.Report{}))
	assert.ErrorIs(t, err, context.Canceled)
}
