package report

// Category identifies the kind of disaster or crisis information carried by
// a decoded satellite message. The set is closed: decoders map anything they
// do not recognize to CategoryUnknown, and the rest of the agent branches on
// the descriptor table below instead of on concrete decoder types.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryEarthquakeEarlyWarning
	CategoryHypocenter
	CategorySeismicIntensity
	CategoryNankaiTroughEarthquake
	CategoryTsunami
	CategoryNorthwestPacificTsunami
	CategoryVolcano
	CategoryAshFall
	CategoryWeather
	CategoryFlood
	CategoryTyphoon
	CategoryMarine
	CategoryJAlert
	CategoryLAlert
	CategoryMunicipal
	CategoryOverseas
	CategoryNull
)

// Descriptor is the per-category rule record. KeywordKey names the config
// option holding the category's keyword list and Vocabulary the closed set
// of legal values those keywords are validated against; both are zero for
// categories without a locality filter. MultiPart marks categories whose
// messages arrive in parts and carry a completeness flag. Extended marks the
// non-JMA message family delivered with a fixed subject label.
type Descriptor struct {
	Name       string
	Label      string
	KeywordKey string
	Vocabulary Vocabulary
	MultiPart  bool
	Extended   bool
}

var descriptors = map[Category]Descriptor{
	CategoryEarthquakeEarlyWarning: {
		Name:       "EarthquakeEarlyWarning",
		Label:      "Earthquake Early Warning",
		KeywordKey: "Regions",
		Vocabulary: VocabularyEEWForecastRegions,
	},
	CategoryHypocenter: {
		Name:  "Hypocenter",
		Label: "Hypocenter",
	},
	CategorySeismicIntensity: {
		Name:       "SeismicIntensity",
		Label:      "Seismic Intensity",
		KeywordKey: "Prefectures",
		Vocabulary: VocabularyPrefectures,
	},
	CategoryNankaiTroughEarthquake: {
		Name:      "NankaiTroughEarthquake",
		Label:     "Nankai Trough Earthquake",
		MultiPart: true,
	},
	CategoryTsunami: {
		Name:       "Tsunami",
		Label:      "Tsunami",
		KeywordKey: "Regions",
		Vocabulary: VocabularyTsunamiForecastRegions,
	},
	CategoryNorthwestPacificTsunami: {
		Name:       "NorthwestPacificTsunami",
		Label:      "Northwest Pacific Tsunami",
		KeywordKey: "Regions",
		Vocabulary: VocabularyCoastalRegions,
	},
	CategoryVolcano: {
		Name:       "Volcano",
		Label:      "Volcano",
		KeywordKey: "LocalGovernments",
		Vocabulary: VocabularyLocalGovernments,
	},
	CategoryAshFall: {
		Name:       "AshFall",
		Label:      "Ash Fall",
		KeywordKey: "LocalGovernments",
		Vocabulary: VocabularyLocalGovernments,
	},
	CategoryWeather: {
		Name:       "Weather",
		Label:      "Weather",
		KeywordKey: "Regions",
		Vocabulary: VocabularyWeatherForecastRegions,
	},
	CategoryFlood: {
		Name:       "Flood",
		Label:      "Flood",
		KeywordKey: "Regions",
		Vocabulary: VocabularyFloodForecastRegions,
	},
	CategoryTyphoon: {
		Name:  "Typhoon",
		Label: "Typhoon",
	},
	CategoryMarine: {
		Name:       "Marine",
		Label:      "Marine",
		KeywordKey: "Regions",
		Vocabulary: VocabularyMarineForecastRegions,
	},
	CategoryJAlert: {
		Name:     "JAlert",
		Label:    "J-Alert",
		Extended: true,
	},
	CategoryLAlert: {
		Name:     "LAlert",
		Label:    "L-Alert",
		Extended: true,
	},
	CategoryMunicipal: {
		Name:     "Municipal",
		Label:    "Municipal Information",
		Extended: true,
	},
	CategoryOverseas: {
		Name:     "Overseas",
		Label:    "Overseas Information",
		Extended: true,
	},
	CategoryNull: {
		Name:  "Null",
		Label: "Null",
	},
	CategoryUnknown: {
		Name:  "Unknown",
		Label: "Unknown",
	},
}

// categoryOrder lists the configurable categories in the order they appear
// in config files, validation output and tests.
var categoryOrder = []Category{
	CategoryEarthquakeEarlyWarning,
	CategoryHypocenter,
	CategorySeismicIntensity,
	CategoryNankaiTroughEarthquake,
	CategoryTsunami,
	CategoryNorthwestPacificTsunami,
	CategoryVolcano,
	CategoryAshFall,
	CategoryWeather,
	CategoryFlood,
	CategoryTyphoon,
	CategoryMarine,
	CategoryJAlert,
	CategoryLAlert,
	CategoryMunicipal,
	CategoryOverseas,
}

var categoriesByName = func() map[string]Category {
	m := make(map[string]Category, len(descriptors))
	for c, d := range descriptors {
		m[d.Name] = c
	}
	return m
}()

// Categories returns the configurable categories in deterministic order.
// Null and Unknown are not configurable: Null is always suppressed and
// Unknown is always dropped.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Descriptor returns the rule record for c. Unlisted values fall back to
// the Unknown descriptor.
func (c Category) Descriptor() Descriptor {
	if d, ok := descriptors[c]; ok {
		return d
	}
	return descriptors[CategoryUnknown]
}

func (c Category) String() string {
	return c.Descriptor().Name
}

// ParseCategory maps a category tag to its Category. Unrecognized tags map
// to CategoryUnknown rather than an error: the decoder vocabulary may grow
// ahead of this agent.
func ParseCategory(s string) Category {
	if c, ok := categoriesByName[s]; ok {
		return c
	}
	return CategoryUnknown
}
