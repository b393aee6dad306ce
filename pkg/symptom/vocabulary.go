package symptom

import "github.com/mediconsult/platform/pkg/common/models"

const (
	Fever             models.SymptomTag = "fever"
	Chills            models.SymptomTag = "chills"
	Headache          models.SymptomTag = "headache"
	Cough             models.SymptomTag = "cough"
	SoreThroat        models.SymptomTag = "sore_throat"
	RunnyNose         models.SymptomTag = "runny_nose"
	Sneezing          models.SymptomTag = "sneezing"
	NasalCongestion   models.SymptomTag = "nasal_congestion"
	BodyAche          models.SymptomTag = "body_ache"
	Fatigue           models.SymptomTag = "fatigue"
	Nausea            models.SymptomTag = "nausea"
	Vomiting          models.SymptomTag = "vomiting"
	Diarrhea          models.SymptomTag = "diarrhea"
	StomachPain       models.SymptomTag = "stomach_pain"
	Acidity           models.SymptomTag = "acidity"
	Constipation      models.SymptomTag = "constipation"
	LossOfAppetite    models.SymptomTag = "loss_of_appetite"
	ChestPain         models.SymptomTag = "chest_pain"
	ShortnessOfBreath models.SymptomTag = "shortness_of_breath"
	Wheezing          models.SymptomTag = "wheezing"
	Dizziness         models.SymptomTag = "dizziness"
	Rash              models.SymptomTag = "rash"
	Itching           models.SymptomTag = "itching"
	JointPain         models.SymptomTag = "joint_pain"
	BackPain          models.SymptomTag = "back_pain"
	EarPain           models.SymptomTag = "ear_pain"
	EyeRedness        models.SymptomTag = "eye_redness"
	BurningUrination  models.SymptomTag = "burning_urination"
	FrequentUrination models.SymptomTag = "frequent_urination"
	ExcessiveThirst   models.SymptomTag = "excessive_thirst"
	WeightLoss        models.SymptomTag = "weight_loss"
	BlurredVision     models.SymptomTag = "blurred_vision"
	Sweating          models.SymptomTag = "sweating"
	Anxiety           models.SymptomTag = "anxiety"
	Insomnia          models.SymptomTag = "insomnia"
	Palpitations      models.SymptomTag = "palpitations"
)

var vocabulary = map[models.SymptomTag]struct{}{
	Fever: {}, Chills: {}, Headache: {}, Cough: {}, SoreThroat: {}, RunnyNose: {},
	Sneezing: {}, NasalCongestion: {}, BodyAche: {}, Fatigue: {}, Nausea: {},
	Vomiting: {}, Diarrhea: {}, StomachPain: {}, Acidity: {}, Constipation: {},
	LossOfAppetite: {}, ChestPain: {}, ShortnessOfBreath: {}, Wheezing: {},
	Dizziness: {}, Rash: {}, Itching: {}, JointPain: {}, BackPain: {}, EarPain: {},
	EyeRedness: {}, BurningUrination: {}, FrequentUrination: {}, ExcessiveThirst: {},
	WeightLoss: {}, BlurredVision: {}, Sweating: {}, Anxiety: {}, Insomnia: {},
	Palpitations: {},
}

// Known reports whether tag belongs to the symptom vocabulary.
func Known(tag models.SymptomTag) bool {
	_, ok := vocabulary[tag]
	return ok
}
