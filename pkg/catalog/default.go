package catalog

import "github.com/mediconsult/platform/pkg/common/models"

// Default is the embedded catalog used when no CSV can be loaded. It carries at
// least one medicine for every category referenced by the default disease table.
func Default() *Catalog {
	return New(defaultMedicines())
}

func defaultMedicines() []models.Medicine {
	return []models.Medicine{
		{Name: "Paracetamol", Price: 25, Manufacturer: "GSK", Type: "Antipyretic", Composition: "Paracetamol 500mg",
			Description: "Relieves fever and mild to moderate pain", SideEffects: "Nausea, rash (rare)", DrugInteractions: "Warfarin, alcohol",
			Category: "fever", DosageForm: "Tablet", Strength: "500mg", PackageSize: "15 tablets"},
		{Name: "Crocin Advance", Price: 30, Manufacturer: "GSK", Type: "Antipyretic", Composition: "Paracetamol 500mg",
			Description: "Fast absorbing paracetamol for fever", SideEffects: "Nausea", Category: "fever", DosageForm: "Tablet",
			Strength: "500mg", PackageSize: "20 tablets"},
		{Name: "Ibuprofen", Price: 35, Manufacturer: "Abbott", Type: "Analgesic", Composition: "Ibuprofen 400mg",
			Description: "Anti-inflammatory pain reliever", SideEffects: "Acidity, stomach upset", DrugInteractions: "Aspirin, blood thinners",
			Category: "pain_relief", DosageForm: "Tablet", Strength: "400mg", PackageSize: "10 tablets"},
		{Name: "Combiflam", Price: 40, Manufacturer: "Sanofi", Type: "Analgesic", Composition: "Ibuprofen 400mg + Paracetamol 325mg",
			Description: "Combination analgesic for pain and fever", SideEffects: "Acidity", Category: "pain_relief", DosageForm: "Tablet",
			Strength: "400mg/325mg", PackageSize: "20 tablets"},
		{Name: "Diclofenac Gel", Price: 95, Manufacturer: "Novartis", Type: "Topical", Composition: "Diclofenac 1%",
			Description: "Topical gel for joint and muscle pain", SideEffects: "Skin irritation", Category: "pain_relief",
			DosageForm: "Gel", Strength: "1%", PackageSize: "30g"},
		{Name: "Cetirizine", Price: 20, Manufacturer: "Cipla", Type: "Antihistamine", Composition: "Cetirizine 10mg",
			Description: "Relieves sneezing, runny nose and itching", SideEffects: "Drowsiness", DrugInteractions: "Alcohol, sedatives",
			Category: "allergy", DosageForm: "Tablet", Strength: "10mg", PackageSize: "10 tablets"},
		{Name: "Levocetirizine", Price: 45, Manufacturer: "Sun Pharma", Type: "Antihistamine", Composition: "Levocetirizine 5mg",
			Description: "Non-drowsy allergy relief", SideEffects: "Dry mouth", Category: "allergy", DosageForm: "Tablet",
			Strength: "5mg", PackageSize: "10 tablets"},
		{Name: "Benadryl Cough Syrup", Price: 110, Manufacturer: "Johnson & Johnson", Type: "Cough Syrup", Composition: "Diphenhydramine 14mg/5ml",
			Description: "Relieves cough and throat irritation", SideEffects: "Drowsiness", Category: "respiratory", DosageForm: "Syrup",
			Strength: "100ml", PackageSize: "100ml"},
		{Name: "Sinarest", Price: 55, Manufacturer: "Centaur", Type: "Decongestant", Composition: "Paracetamol 500mg + Phenylephrine 10mg + Chlorpheniramine 2mg",
			Description: "Cold and nasal congestion relief", SideEffects: "Drowsiness, dry mouth", Category: "respiratory", DosageForm: "Tablet",
			Strength: "500mg", PackageSize: "10 tablets"},
		{Name: "Salbutamol Inhaler", Price: 150, Manufacturer: "Cipla", Type: "Bronchodilator", Composition: "Salbutamol 100mcg",
			Description: "Relieves wheezing and breathlessness", SideEffects: "Tremor, palpitations", Category: "respiratory", DosageForm: "Inhaler",
			Strength: "100mcg", PackageSize: "200 doses", PrescriptionRequired: true},
		{Name: "Amoxicillin", Price: 85, Manufacturer: "Alkem", Type: "Antibiotic", Composition: "Amoxicillin 500mg",
			Description: "Broad spectrum antibiotic", SideEffects: "Diarrhea, rash", DrugInteractions: "Methotrexate, oral contraceptives",
			Category: "antibiotic", DosageForm: "Capsule", Strength: "500mg", PackageSize: "10 capsules", PrescriptionRequired: true},
		{Name: "Azithromycin", Price: 120, Manufacturer: "Cipla", Type: "Antibiotic", Composition: "Azithromycin 500mg",
			Description: "Macrolide antibiotic for respiratory infections", SideEffects: "Nausea, diarrhea", Category: "antibiotic",
			DosageForm: "Tablet", Strength: "500mg", PackageSize: "3 tablets", PrescriptionRequired: true},
		{Name: "Nitrofurantoin", Price: 140, Manufacturer: "Sun Pharma", Type: "Antibiotic", Composition: "Nitrofurantoin 100mg",
			Description: "Antibiotic for urinary tract infections", SideEffects: "Nausea, headache", Category: "urinary",
			DosageForm: "Capsule", Strength: "100mg", PackageSize: "10 capsules", PrescriptionRequired: true},
		{Name: "Cital Syrup", Price: 130, Manufacturer: "Indoco", Type: "Urinary Alkalizer", Composition: "Disodium Hydrogen Citrate 1.4g/5ml",
			Description: "Relieves burning during urination", SideEffects: "Bloating", Category: "urinary", DosageForm: "Syrup",
			Strength: "100ml", PackageSize: "100ml"},
		{Name: "Pantoprazole", Price: 60, Manufacturer: "Alkem", Type: "Antacid", Composition: "Pantoprazole 40mg",
			Description: "Reduces stomach acid", SideEffects: "Headache, flatulence", Category: "digestive", DosageForm: "Tablet",
			Strength: "40mg", PackageSize: "15 tablets"},
		{Name: "ORS Electral", Price: 22, Manufacturer: "FDC", Type: "Rehydration", Composition: "Oral Rehydration Salts",
			Description: "Replaces fluids and electrolytes lost to diarrhea or vomiting", Category: "digestive", DosageForm: "Sachet",
			Strength: "21.8g", PackageSize: "1 sachet"},
		{Name: "Ondansetron", Price: 45, Manufacturer: "Cipla", Type: "Antiemetic", Composition: "Ondansetron 4mg",
			Description: "Prevents nausea and vomiting", SideEffects: "Constipation, headache", Category: "digestive", DosageForm: "Tablet",
			Strength: "4mg", PackageSize: "10 tablets", PrescriptionRequired: true},
		{Name: "Lactulose Syrup", Price: 180, Manufacturer: "Abbott", Type: "Laxative", Composition: "Lactulose 10g/15ml",
			Description: "Relieves constipation", SideEffects: "Bloating", Category: "digestive", DosageForm: "Syrup",
			Strength: "200ml", PackageSize: "200ml"},
		{Name: "Artemether Lumefantrine", Price: 210, Manufacturer: "Ipca", Type: "Antimalarial", Composition: "Artemether 80mg + Lumefantrine 480mg",
			Description: "Combination therapy for malaria", SideEffects: "Dizziness, headache", Category: "antimalarial", DosageForm: "Tablet",
			Strength: "80mg/480mg", PackageSize: "6 tablets", PrescriptionRequired: true},
		{Name: "Calamine Lotion", Price: 90, Manufacturer: "Piramal", Type: "Topical", Composition: "Calamine 8% + Zinc Oxide 8%",
			Description: "Soothes itching and rashes", Category: "dermatology", DosageForm: "Lotion", Strength: "100ml", PackageSize: "100ml"},
		{Name: "Moxifloxacin Eye Drops", Price: 115, Manufacturer: "Cipla", Type: "Eye Drops", Composition: "Moxifloxacin 0.5%",
			Description: "Antibacterial drops for eye infections", SideEffects: "Eye irritation", Category: "eye_care", DosageForm: "Drops",
			Strength: "5ml", PackageSize: "5ml", PrescriptionRequired: true},
		{Name: "Lubricating Eye Drops", Price: 150, Manufacturer: "Allergan", Type: "Eye Drops", Composition: "Carboxymethylcellulose 0.5%",
			Description: "Relieves dry and irritated eyes", Category: "eye_care", DosageForm: "Drops", Strength: "10ml", PackageSize: "10ml"},
		{Name: "Metformin", Price: 40, Manufacturer: "USV", Type: "Antidiabetic", Composition: "Metformin 500mg",
			Description: "Controls blood sugar in type 2 diabetes", SideEffects: "Nausea, diarrhea", DrugInteractions: "Alcohol, contrast dye",
			Category: "diabetes", DosageForm: "Tablet", Strength: "500mg", PackageSize: "20 tablets", PrescriptionRequired: true},
		{Name: "Amlodipine", Price: 35, Manufacturer: "Pfizer", Type: "Antihypertensive", Composition: "Amlodipine 5mg",
			Description: "Lowers blood pressure", SideEffects: "Ankle swelling, flushing", Category: "cardiac", DosageForm: "Tablet",
			Strength: "5mg", PackageSize: "15 tablets", PrescriptionRequired: true},
		{Name: "Multivitamin", Price: 120, Manufacturer: "Abbott", Type: "Supplement", Composition: "Vitamins A, B complex, C, D, E and Zinc",
			Description: "Daily nutritional support during recovery", Category: "general", DosageForm: "Tablet", Strength: "1 tablet",
			PackageSize: "30 tablets"},
		{Name: "Vitamin C", Price: 30, Manufacturer: "Mankind", Type: "Supplement", Composition: "Ascorbic Acid 500mg",
			Description: "Supports immunity", Category: "general", DosageForm: "Chewable Tablet", Strength: "500mg", PackageSize: "15 tablets"},
	}
}
