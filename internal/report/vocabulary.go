package report

// Vocabulary identifies the closed list of legal locality values that a
// category's configured keywords are validated against at startup.
type Vocabulary uint8

const (
	VocabularyNone Vocabulary = iota
	VocabularyEEWForecastRegions
	VocabularyPrefectures
	VocabularyTsunamiForecastRegions
	VocabularyCoastalRegions
	VocabularyLocalGovernments
	VocabularyWeatherForecastRegions
	VocabularyFloodForecastRegions
	VocabularyMarineForecastRegions
)

// Values returns the legal locality values for the vocabulary, nil for
// VocabularyNone. Callers must not mutate the returned slice.
func (v Vocabulary) Values() []string {
	switch v {
	case VocabularyEEWForecastRegions:
		return eewForecastRegions
	case VocabularyPrefectures:
		return prefectures
	case VocabularyTsunamiForecastRegions:
		return tsunamiForecastRegions
	case VocabularyCoastalRegions:
		return coastalRegions
	case VocabularyLocalGovernments:
		return localGovernments
	case VocabularyWeatherForecastRegions:
		return weatherForecastRegions
	case VocabularyFloodForecastRegions:
		return floodForecastRegions
	case VocabularyMarineForecastRegions:
		return marineForecastRegions
	default:
		return nil
	}
}

var eewForecastRegions = []string{
	"Northern Hokkaido", "Central Hokkaido", "Southern Hokkaido",
	"Aomori", "Iwate", "Miyagi", "Akita", "Yamagata", "Fukushima",
	"Ibaraki", "Tochigi", "Gunma", "Saitama", "Chiba", "Tokyo",
	"Izu Islands", "Ogasawara", "Kanagawa", "Niigata", "Toyama",
	"Ishikawa", "Fukui", "Yamanashi", "Nagano", "Gifu", "Shizuoka",
	"Aichi", "Mie", "Shiga", "Kyoto", "Osaka", "Hyogo", "Nara",
	"Wakayama", "Tottori", "Shimane", "Okayama", "Hiroshima",
	"Yamaguchi", "Tokushima", "Kagawa", "Ehime", "Kochi", "Fukuoka",
	"Saga", "Nagasaki", "Kumamoto", "Oita", "Miyazaki", "Kagoshima",
	"Amami", "Okinawa Main Island", "Daito Islands", "Miyakojima",
	"Yaeyama",
}

var prefectures = []string{
	"Hokkaido", "Aomori", "Iwate", "Miyagi", "Akita", "Yamagata",
	"Fukushima", "Ibaraki", "Tochigi", "Gunma", "Saitama", "Chiba",
	"Tokyo", "Kanagawa", "Niigata", "Toyama", "Ishikawa", "Fukui",
	"Yamanashi", "Nagano", "Gifu", "Shizuoka", "Aichi", "Mie",
	"Shiga", "Kyoto", "Osaka", "Hyogo", "Nara", "Wakayama",
	"Tottori", "Shimane", "Okayama", "Hiroshima", "Yamaguchi",
	"Tokushima", "Kagawa", "Ehime", "Kochi", "Fukuoka", "Saga",
	"Nagasaki", "Kumamoto", "Oita", "Miyazaki", "Kagoshima",
	"Okinawa",
}

var tsunamiForecastRegions = []string{
	"Hokkaido Pacific Coast East", "Hokkaido Pacific Coast Central",
	"Hokkaido Pacific Coast West", "Hokkaido Sea of Japan Coast North",
	"Hokkaido Sea of Japan Coast South", "Okhotsk Sea Coast",
	"Aomori Sea of Japan Coast", "Aomori Pacific Coast", "Mutsu Bay",
	"Iwate", "Miyagi", "Fukushima", "Ibaraki",
	"Chiba Kujukuri and Sotobo", "Chiba Uchibo", "Tokyo Bay Inner Part",
	"Izu Islands", "Ogasawara Islands", "Sagami Bay and Miura Peninsula",
	"Shizuoka", "Aichi Outer Sea", "Ise and Mikawa Bay", "Mie South",
	"Wakayama", "Osaka", "Hyogo Seto Inland Sea Coast", "Awaji South",
	"Tokushima", "Kagawa", "Ehime Uwakai Coast",
	"Ehime Seto Inland Sea Coast", "Kochi", "Oita Seto Inland Sea Coast",
	"Oita Bungo Channel Coast", "Miyazaki", "Tanegashima and Yakushima",
	"Amami and Tokara", "Kagoshima East", "Kagoshima West",
	"Okinawa Main Island", "Miyakojima and Yaeyama", "Daito Islands",
	"Niigata", "Sado", "Toyama", "Ishikawa Noto", "Ishikawa Kaga",
	"Fukui", "Kyoto", "Hyogo Sea of Japan Coast", "Tottori", "Shimane",
	"Oki", "Yamaguchi Sea of Japan Coast", "Fukuoka Genkai Coast",
	"Fukuoka Seto Inland Sea Coast", "Ariake and Yatsushiro Sea",
	"Saga North", "Nagasaki West", "Iki and Tsushima",
}

var coastalRegions = []string{
	"KAMCHATKA PENINSULA", "KURIL ISLANDS", "SAKHALIN",
	"MARITIME TERRITORY OF RUSSIA", "REPUBLIC OF KOREA",
	"DEMOCRATIC PEOPLES REPUBLIC OF KOREA", "EAST COAST OF CHINA",
	"TAIWAN", "PHILIPPINES", "INDONESIA", "PALAU",
	"NORTHERN MARIANA ISLANDS", "GUAM", "FEDERATED STATES OF MICRONESIA",
	"MARSHALL ISLANDS", "NAURU", "PAPUA NEW GUINEA", "SOLOMON ISLANDS",
	"VANUATU", "NEW CALEDONIA", "FIJI", "WAKE ISLAND", "MIDWAY ISLANDS",
	"HAWAIIAN ISLANDS",
}

var localGovernments = []string{
	"Sapporo City", "Hakodate City", "Aomori City", "Morioka City",
	"Sendai City", "Akita City", "Yamagata City", "Fukushima City",
	"Mito City", "Utsunomiya City", "Maebashi City", "Saitama City",
	"Chiba City", "Shinjuku Ward", "Ota Ward", "Hachioji City",
	"Oshima Town", "Hachijo Town", "Ogasawara Village", "Yokohama City",
	"Kawasaki City", "Odawara City", "Hakone Town", "Niigata City",
	"Toyama City", "Kanazawa City", "Fukui City", "Kofu City",
	"Fujiyoshida City", "Narusawa Village", "Nagano City",
	"Matsumoto City", "Karuizawa Town", "Gifu City", "Takayama City",
	"Shizuoka City", "Hamamatsu City", "Gotemba City", "Fuji City",
	"Fujinomiya City", "Nagoya City", "Toyohashi City", "Tsu City",
	"Otsu City", "Kyoto City", "Osaka City", "Sakai City", "Kobe City",
	"Himeji City", "Nara City", "Wakayama City", "Tottori City",
	"Matsue City", "Okayama City", "Hiroshima City", "Shimonoseki City",
	"Tokushima City", "Takamatsu City", "Matsuyama City", "Kochi City",
	"Kitakyushu City", "Fukuoka City", "Saga City", "Nagasaki City",
	"Shimabara City", "Unzen City", "Kumamoto City", "Aso City",
	"Minamiaso Village", "Oita City", "Beppu City", "Yufu City",
	"Miyazaki City", "Kobayashi City", "Takaharu Town", "Kirishima City",
	"Kagoshima City", "Tarumizu City", "Kanoya City", "Mishima Village",
	"Toshima Village", "Yakushima Town", "Naha City", "Miyakojima City",
	"Ishigaki City",
}

var weatherForecastRegions = []string{
	"Northern Hokkaido", "Eastern Hokkaido", "Central Hokkaido",
	"Southern Hokkaido", "Aomori", "Iwate", "Miyagi", "Akita",
	"Yamagata", "Fukushima", "Ibaraki", "Tochigi", "Gunma", "Saitama",
	"Chiba", "Tokyo", "Izu Islands", "Ogasawara", "Kanagawa", "Niigata",
	"Toyama", "Ishikawa", "Fukui", "Yamanashi", "Nagano", "Gifu",
	"Shizuoka", "Aichi", "Mie", "Shiga", "Kyoto", "Osaka", "Hyogo",
	"Nara", "Wakayama", "Tottori", "Shimane", "Okayama", "Hiroshima",
	"Yamaguchi", "Tokushima", "Kagawa", "Ehime", "Kochi", "Fukuoka",
	"Saga", "Nagasaki", "Kumamoto", "Oita", "Miyazaki", "Kagoshima",
	"Amami", "Okinawa Main Island", "Daito Islands", "Miyakojima",
	"Yaeyama",
}

var floodForecastRegions = []string{
	"Ishikari River", "Tokachi River", "Kitakami River", "Naruse River",
	"Abukuma River", "Mogami River", "Omono River", "Tone River",
	"Edo River", "Arakawa River", "Tama River", "Sagami River",
	"Shinano River", "Agano River", "Jinzu River", "Tedori River",
	"Kuzuryu River", "Fuji River", "Abe River", "Oi River",
	"Tenryu River", "Toyo River", "Kiso River", "Nagara River",
	"Ibi River", "Shonai River", "Yahagi River", "Yodo River",
	"Yamato River", "Kako River", "Kino River", "Sendai River",
	"Hii River", "Gono River", "Ota River", "Takahashi River",
	"Asahi River", "Yoshii River", "Yoshino River", "Shigenobu River",
	"Monobe River", "Niyodo River", "Shimanto River", "Chikugo River",
	"Yabe River", "Kuma River", "Oyodo River",
}

var marineForecastRegions = []string{
	"Sea of Okhotsk", "Off Kushiro", "Off Sanriku", "Off Joban",
	"Off Boso", "Off Tokaido", "Off Enshu", "Off Kumano",
	"Off Shikoku", "Off Hyuga", "Off Satsunan", "East China Sea",
	"Okinawa Area", "Tsugaru Strait", "Off Sado", "Off Noto",
	"Off Oki", "Genkai Sea", "Tsushima Strait", "Seto Inland Sea",
	"Osaka Bay", "Ise Bay", "Tokyo Bay",
}
