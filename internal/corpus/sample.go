package corpus

import "github.com/ppiankov/cyberabsa/internal/model"

// SampleRecords returns the built-in fallback corpus used when no real data
// has been collected. Every record carries source "sample" so downstream
// reports show where the data came from.
func SampleRecords() []model.RawRecord {
	return []model.RawRecord{
		{
			Source:            "sample",
			Title:             "Ransomware Attack on Healthcare System",
			Text:              "A major ransomware attack targeted a healthcare system, encrypting patient records and demanding payment. The attack exploited vulnerabilities in the firewall configuration.",
			Published:         "2024-01-15",
			ExtractionSuccess: true,
		},
		{
			Source:            "sample",
			Title:             "Phishing Campaign Targets Financial Institutions",
			Text:              "A sophisticated phishing campaign targeted multiple financial institutions, using social engineering to bypass authentication systems. Incident response teams were activated.",
			Published:         "2024-01-20",
			ExtractionSuccess: true,
		},
		{
			Source:            "sample",
			Title:             "Vulnerability in Encryption Software Discovered",
			Text:              "Security researchers discovered a critical vulnerability in widely used encryption software that could allow threat actors to bypass security controls.",
			Published:         "2024-01-25",
			ExtractionSuccess: true,
		},
		{
			Source:            "sample",
			Title:             "Malware Infection via Supply Chain Attack",
			Text:              "A supply chain attack resulted in malware being distributed through legitimate software updates. Intrusion detection systems failed to identify the threat initially.",
			Published:         "2024-02-01",
			ExtractionSuccess: true,
		},
		{
			Source:            "sample",
			Title:             "Data Breach Exposes Customer Information",
			Text:              "A data breach at a major corporation exposed sensitive customer information. The breach was caused by inadequate patch management and weak security controls.",
			Published:         "2024-02-05",
			ExtractionSuccess: true,
		},
	}
}
