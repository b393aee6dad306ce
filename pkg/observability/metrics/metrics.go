package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/mediconsult/platform/pkg/common/models"
)

var (
	consultNeedMoreInfo atomic.Int64
	consultNoDiagnosis  atomic.Int64
	consultDiagnosed    atomic.Int64
	consultRejected     atomic.Int64
	adviceGenerated     atomic.Int64
	adviceFallback      atomic.Int64
	eventsPublished     atomic.Int64
	eventsFailed        atomic.Int64
	recordFailures      atomic.Int64
	catalogMedicines    atomic.Int64
)

func ObserveConsultation(status string) {
	switch status {
	case models.StatusNeedMoreInfo:
		consultNeedMoreInfo.Add(1)
	case models.StatusNoDiagnosis:
		consultNoDiagnosis.Add(1)
	case models.StatusDiagnosed:
		consultDiagnosed.Add(1)
	}
}

func ObserveRejected() { consultRejected.Add(1) }

func ObserveAdvice(generated bool) {
	if generated {
		adviceGenerated.Add(1)
		return
	}
	adviceFallback.Add(1)
}

func ObserveEvent(err error) {
	if err != nil {
		eventsFailed.Add(1)
		return
	}
	eventsPublished.Add(1)
}

func ObserveRecordFailure() { recordFailures.Add(1) }

func SetCatalogSize(n int) { catalogMedicines.Store(int64(n)) }

type series struct {
	name, help, kind string
	value            *atomic.Int64
	labels           string
}

func all() []series {
	const consultHelp = "Consultations handled, by outcome."
	return []series{
		{"mediconsult_consultations_total", consultHelp, "counter", &consultNeedMoreInfo, `status="need_more_info"`},
		{"mediconsult_consultations_total", consultHelp, "counter", &consultNoDiagnosis, `status="no_diagnosis"`},
		{"mediconsult_consultations_total", consultHelp, "counter", &consultDiagnosed, `status="diagnosed"`},
		{"mediconsult_consultations_rejected_total", "Consultation requests rejected as invalid.", "counter", &consultRejected, ""},
		{"mediconsult_advice_total", "Advice texts returned, by source.", "counter", &adviceGenerated, `source="provider"`},
		{"mediconsult_advice_total", "Advice texts returned, by source.", "counter", &adviceFallback, `source="fallback"`},
		{"mediconsult_events_published_total", "Consultation events written to Kafka.", "counter", &eventsPublished, ""},
		{"mediconsult_events_failed_total", "Consultation events that could not be written.", "counter", &eventsFailed, ""},
		{"mediconsult_record_failures_total", "Consultation log writes that failed.", "counter", &recordFailures, ""},
		{"mediconsult_catalog_medicines", "Medicines in the loaded catalog.", "gauge", &catalogMedicines, ""},
	}
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	last := ""
	for _, s := range all() {
		if s.name != last {
			fmt.Fprintf(w, "# HELP %s %s\n", s.name, s.help)
			fmt.Fprintf(w, "# TYPE %s %s\n", s.name, s.kind)
			last = s.name
		}
		if s.labels != "" {
			fmt.Fprintf(w, "%s{%s} %d\n", s.name, s.labels, s.value.Load())
			continue
		}
		fmt.Fprintf(w, "%s %d\n", s.name, s.value.Load())
	}
}

// Handler serves WritePrometheus.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WritePrometheus(w)
	})
}
