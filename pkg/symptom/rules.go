package symptom

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rule lists the alternatives that map free text to one tag. Keywords are
// literal phrases: ASCII keywords match whole words with an optional plural
// suffix, a trailing "*" turns a keyword into a stem, and non-ASCII keywords
// match anywhere. Patterns are regular expressions.
type Rule struct {
	Tag      string   `yaml:"tag" json:"tag"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}

// CompoundRule adds every tag in Adds when any When phrase matches and, if And
// is non-empty, any And phrase matches as well. Compound phrases match whole
// words only.
type CompoundRule struct {
	Name string   `yaml:"name" json:"name"`
	When []string `yaml:"when" json:"when"`
	And  []string `yaml:"and,omitempty" json:"and,omitempty"`
	Adds []string `yaml:"adds" json:"adds"`
}

type RulesConfig struct {
	Rules    []Rule         `yaml:"rules" json:"rules"`
	Compound []CompoundRule `yaml:"compound" json:"compound"`
}

func LoadRules(path string) (RulesConfig, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return RulesConfig{}, err
	}

	if len(cfg.Rules) == 0 {
		return RulesConfig{}, errors.New("no symptom rules configured")
	}

	return cfg, nil
}

var painWords = []string{"pain", "pains", "painful", "ache", "aches", "aching", "hurt", "hurts", "hurting", "sore", "dard", "दर्द", "पीड़ा"}

func DefaultRules() RulesConfig {
	return RulesConfig{
		Rules: []Rule{
			{Tag: string(Fever), Keywords: []string{"fever", "feverish", "temperature", "high temp", "bukhar", "bukhaar", "jwar", "बुखार", "ज्वर"},
				Patterns: []string{`\b(?:99\.[5-9]|10[0-5](?:\.\d)?)\s*(?:°\s*)?f\b`}},
			{Tag: string(Chills), Keywords: []string{"chills", "shiver*", "rigors", "kapkapi", "thand lag", "कंपकंपी", "ठंड लग*"}},
			{Tag: string(Headache), Keywords: []string{"headache", "head ache", "migraine", "sir dard", "sar dard", "sirdard", "सिर दर्द", "सिरदर्द"}},
			{Tag: string(Cough), Keywords: []string{"cough*", "khansi", "khaansi", "खांसी", "खाँसी"}},
			{Tag: string(SoreThroat), Keywords: []string{"sore throat", "throat pain", "throat irritation", "scratchy throat", "gale me dard", "gala kharab", "गले में दर्द", "गला खराब"}},
			{Tag: string(RunnyNose), Keywords: []string{"runny nose", "running nose", "nasal discharge", "naak beh", "नाक बह*"}},
			{Tag: string(Sneezing), Keywords: []string{"sneez*", "chheenk", "chink", "छींक*"}},
			{Tag: string(NasalCongestion), Keywords: []string{"blocked nose", "stuffy nose", "nasal congestion", "congestion", "naak band", "नाक बंद"}},
			{Tag: string(BodyAche), Keywords: []string{"body ache", "body pain", "bodyache", "badan dard", "sharir dard", "बदन दर्द", "शरीर दर्द"}},
			{Tag: string(Fatigue), Keywords: []string{"fatigue", "tired", "weakness", "exhausted", "lethargic", "thakan", "kamzori", "थकान", "कमजोरी"}},
			{Tag: string(Nausea), Keywords: []string{"nausea", "nauseous", "queasy", "ji machal", "jee michla", "मतली", "जी मिचल*"}},
			{Tag: string(Vomiting), Keywords: []string{"vomit*", "throwing up", "threw up", "ulti", "उल्टी*"}},
			{Tag: string(Diarrhea), Keywords: []string{"diarrhea", "diarrhoea", "loose motion", "loose stool", "watery stool", "dast", "दस्त"}},
			{Tag: string(StomachPain), Keywords: []string{"stomach pain", "stomach ache", "stomachache", "abdominal pain", "tummy ache", "cramps", "pet dard", "pet me dard", "पेट दर्द", "पेट में दर्द"}},
			{Tag: string(Acidity), Keywords: []string{"acidity", "heartburn", "acid reflux", "indigestion", "khatti dakar", "एसिडिटी", "खट्टी डकार"}},
			{Tag: string(Constipation), Keywords: []string{"constipat*", "kabz", "qabz", "कब्ज"}},
			{Tag: string(LossOfAppetite), Keywords: []string{"loss of appetite", "no appetite", "not hungry", "bhookh nahi", "bhook nahi", "भूख नहीं"}},
			{Tag: string(ChestPain), Keywords: []string{"chest pain", "chest tightness", "chest discomfort", "seene me dard", "सीने में दर्द"}},
			{Tag: string(ShortnessOfBreath), Keywords: []string{"shortness of breath", "short of breath", "breathless", "difficulty breathing", "can't breathe", "cannot breathe", "saans phool", "saans lene me", "सांस फूल*", "सांस लेने में"}},
			{Tag: string(Wheezing), Keywords: []string{"wheez*", "whistling sound"}},
			{Tag: string(Dizziness), Keywords: []string{"dizz*", "lightheaded", "light headed", "vertigo", "chakkar", "चक्कर"}},
			{Tag: string(Rash), Keywords: []string{"rash", "hives", "red spots", "daane", "chakatte", "दाने", "चकत्ते"}},
			{Tag: string(Itching), Keywords: []string{"itch*", "kharish", "khujli", "खुजली"}},
			{Tag: string(JointPain), Keywords: []string{"joint pain", "joints hurt", "arthritis", "knee pain", "jodo me dard", "jodon ka dard", "जोड़ों में दर्द", "जोड़ों का दर्द"}},
			{Tag: string(BackPain), Keywords: []string{"back pain", "backache", "lower back", "kamar dard", "कमर दर्द"}},
			{Tag: string(EarPain), Keywords: []string{"ear pain", "earache", "ear ache", "kaan dard", "kaan me dard", "कान दर्द", "कान में दर्द"}},
			{Tag: string(EyeRedness), Keywords: []string{"red eye", "eye redness", "pink eye", "watery eyes", "aankh lal", "आंख लाल", "आँख लाल"}},
			{Tag: string(BurningUrination), Keywords: []string{"burning urination", "burning sensation while urinating", "burning while urinating", "painful urination", "pain while urinating", "peshab me jalan", "पेशाब में जलन"}},
			{Tag: string(FrequentUrination), Keywords: []string{"frequent urination", "urinating frequently", "urinate often", "baar baar peshab", "बार बार पेशाब", "बार-बार पेशाब"}},
			{Tag: string(ExcessiveThirst), Keywords: []string{"excessive thirst", "very thirsty", "always thirsty", "zyada pyaas", "बहुत प्यास", "ज्यादा प्यास"}},
			{Tag: string(WeightLoss), Keywords: []string{"weight loss", "losing weight", "lost weight", "vajan kam", "वजन कम"}},
			{Tag: string(BlurredVision), Keywords: []string{"blurred vision", "blurry vision", "dhundhla", "धुंधल*"}},
			{Tag: string(Sweating), Keywords: []string{"sweating", "night sweats", "pasina", "पसीना"}},
			{Tag: string(Anxiety), Keywords: []string{"anxiety", "anxious", "panic", "nervous", "ghabrahat", "घबराहट"}},
			{Tag: string(Insomnia), Keywords: []string{"insomnia", "can't sleep", "cannot sleep", "trouble sleeping", "neend nahi", "नींद नहीं"}},
			{Tag: string(Palpitations), Keywords: []string{"palpitation*", "heart racing", "racing heart", "dhadkan tez", "धड़कन तेज"}},
		},
		Compound: []CompoundRule{
			{Name: "common-cold", When: []string{"cold", "colds", "jukam", "zukam", "zukaam", "sardi", "जुकाम", "सर्दी"},
				Adds: []string{string(RunnyNose), string(Sneezing), string(SoreThroat)}},
			{Name: "pain-stomach", When: painWords, And: []string{"stomach", "tummy", "abdomen", "belly", "pet", "पेट"}, Adds: []string{string(StomachPain)}},
			{Name: "pain-chest", When: painWords, And: []string{"chest", "seena", "seene", "सीने", "छाती"}, Adds: []string{string(ChestPain)}},
			{Name: "pain-joint", When: painWords, And: []string{"joint", "joints", "knee", "knees", "elbow", "wrist", "jodo", "ghutne", "जोड़*", "घुटने"}, Adds: []string{string(JointPain)}},
			{Name: "pain-back", When: painWords, And: []string{"back", "spine", "kamar", "कमर"}, Adds: []string{string(BackPain)}},
			{Name: "pain-ear", When: painWords, And: []string{"ear", "kaan", "कान"}, Adds: []string{string(EarPain)}},
			{Name: "pain-head", When: painWords, And: []string{"head", "sir", "sar", "सिर"}, Adds: []string{string(Headache)}},
			{Name: "pain-throat", When: painWords, And: []string{"throat", "gala", "gale", "गला", "गले"}, Adds: []string{string(SoreThroat)}},
			{Name: "pain-body", When: painWords, And: []string{"body", "muscle", "badan", "बदन"}, Adds: []string{string(BodyAche)}},
		},
	}
}
