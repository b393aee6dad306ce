package advice

import (
	"fmt"
	"strings"

	"github.com/mediconsult/platform/pkg/common/models"
)

// Fallback is the canned advice used whenever no provider text is available.
func Fallback(req Request) string {
	hindi := languageName(req.Language) == "Hindi"
	var parts []string

	switch {
	case req.Diagnosis == "" && hindi:
		parts = append(parts, "आपके लक्षणों से कोई स्पष्ट निदान नहीं हो सका। कृपया किसी डॉक्टर से व्यक्तिगत रूप से परामर्श करें।")
	case req.Diagnosis == "":
		parts = append(parts, "We could not reach a clear diagnosis from the symptoms provided. Please consult a doctor in person.")
	case hindi:
		parts = append(parts, fmt.Sprintf("आपके लक्षण %s से मेल खाते हैं। दवाइयाँ बताए अनुसार लें, भरपूर पानी पिएँ और आराम करें।", req.Diagnosis))
	default:
		parts = append(parts, fmt.Sprintf("Your symptoms are consistent with %s. Take the medicines as directed, drink plenty of fluids and rest.", req.Diagnosis))
	}

	switch {
	case req.Severity == models.SeveritySevere && hindi:
		parts = append(parts, "यह स्थिति गंभीर हो सकती है, कृपया 24 घंटे के भीतर डॉक्टर से मिलें।")
	case req.Severity == models.SeveritySevere:
		parts = append(parts, "This condition can be serious. Please see a doctor within 24 hours.")
	case hindi:
		parts = append(parts, "यदि 3 दिनों में सुधार न हो या लक्षण बढ़ें तो डॉक्टर से संपर्क करें।")
	default:
		parts = append(parts, "If you do not improve in 3 days or symptoms get worse, contact a doctor.")
	}
	return strings.Join(parts, " ")
}
