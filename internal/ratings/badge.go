package ratings

const (
	BadgeTop     = "top"
	BadgeTrusted = "trusted"
	BadgeNew     = "new"
)

// Badge is the display form of a trust badge.
type Badge struct {
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type badgeStyle struct {
	icon  string
	color string
	text  map[string]string
}

var badges = map[string]badgeStyle{
	BadgeTop: {
		icon:  "🔵",
		color: "#2196f3",
		text: map[string]string{
			"en": "Top Rated",
			"hi": "शीर्ष रेटेड",
			"te": "టాప్ రేటెడ్",
			"ta": "சிறந்த மதிப்பீடு",
			"kn": "ಉನ್ನತ ರೇಟೆಡ್",
			"ml": "ടോപ്പ് റേറ്റഡ്",
		},
	},
	BadgeTrusted: {
		icon:  "🟢",
		color: "#4caf50",
		text: map[string]string{
			"en": "Trusted Vendor",
			"hi": "विश्वसनीय विक्रेता",
			"te": "నమ్మకమైన విక్రేత",
			"ta": "நம்பகமான விற்பனையாளர்",
			"kn": "ವಿಶ್ವಾಸಾರ್ಹ ಮಾರಾಟಗಾರ",
			"ml": "വിശ്വസ്ത വിൽപ്പനക്കാരൻ",
		},
	},
	BadgeNew: {
		icon:  "🟡",
		color: "#ff9800",
		text: map[string]string{
			"en": "New Vendor",
			"hi": "नया विक्रेता",
			"te": "కొత్త విక్రేత",
			"ta": "புதிய விற்பனையாளர்",
			"kn": "ಹೊಸ ಮಾರಾಟಗಾರ",
			"ml": "പുതിയ വിൽപ്പനക്കാരൻ",
		},
	},
}

// BadgeFor renders a badge key in lang. Unknown keys render as a new vendor and
// unknown languages fall back to English.
func BadgeFor(key, lang string) Badge {
	style, ok := badges[key]
	if !ok {
		key, style = BadgeNew, badges[BadgeNew]
	}
	text, ok := style.text[lang]
	if !ok {
		text = style.text["en"]
	}
	return Badge{Key: key, Icon: style.icon, Text: text, Color: style.color}
}
