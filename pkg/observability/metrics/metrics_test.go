package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mediconsult/platform/pkg/common/models"
)

func TestWritePrometheus(t *testing.T) {
	ObserveConsultation(models.StatusDiagnosed)
	ObserveAdvice(false)
	ObserveEvent(errors.New("broker down"))
	SetCatalogSize(26)

	w := httptest.NewRecorder()
	WritePrometheus(w)
	body := w.Body.String()

	for _, want := range []string{
		`mediconsult_consultations_total{status="diagnosed"}`,
		`mediconsult_advice_total{source="fallback"}`,
		"mediconsult_events_failed_total",
		"mediconsult_catalog_medicines 26",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in output:\n%s", want, body)
		}
	}
	if n := strings.Count(body, "# TYPE mediconsult_consultations_total"); n != 1 {
		t.Fatalf("expected a single TYPE line per family, got %d", n)
	}
}
